package notifier

import (
	"Service_Monitor/internal/service-monitor/alert"
	"Service_Monitor/internal/service-monitor/model"
	"Service_Monitor/pkg/mail"
	"context"
	"fmt"
)

type mailNotifier struct {
	sender     mail.Sender
	recipients []string
	title      string
}

func (m *mailNotifier) Name() string {
	return "mail"
}

func (m *mailNotifier) Send(ctx context.Context, event model.AlertEvent) error {
	if m.sender == nil || len(m.recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mailNotifier.Send: %w", err)
	}
	err := m.sender.SendMail(m.recipients, alert.FormatSubject(m.title, event), "", alert.FormatMessage(event))
	if err != nil {
		return fmt.Errorf("mailNotifier.Send: %w", err)
	}
	return nil
}

func NewMailNotifier(sender mail.Sender, recipients []string, title string) Notifier {
	return &mailNotifier{
		sender:     sender,
		recipients: recipients,
		title:      title,
	}
}
