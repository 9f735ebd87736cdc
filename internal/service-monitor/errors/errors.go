package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrServiceNotFound    = errors.New("service not found")
	ErrDuplicateServiceID = errors.New("duplicate service id")
)

type WebhookError struct {
	StatusCode int
	Body       string
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("webhook responded with [%d]: %s", e.StatusCode, e.Body)
}

func NewWebhookError(statusCode int, body string) error {
	return &WebhookError{
		StatusCode: statusCode,
		Body:       body,
	}
}
