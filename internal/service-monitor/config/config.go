package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	Server  ServerConfig
	Monitor MonitorConfig
	Alert   AlertConfig
	Mail    MailConfig
	Kafka   KafkaConfig
}

type ServerConfig struct {
	Port           string `envconfig:"SERVER_PORT" default:"3000" validate:"required"`
	DashboardTitle string `envconfig:"DASHBOARD_TITLE" default:"Agent Services Monitor"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile        string `envconfig:"LOG_FILE" default:"./log/service-monitor.log"`
}

type MonitorConfig struct {
	CheckInterval time.Duration `envconfig:"CHECK_INTERVAL" default:"5m" validate:"gt=0"`
	ScheduleMode  string        `envconfig:"SCHEDULE_MODE" default:"interval" validate:"oneof=interval cron"`
	ServicesFile  string        `envconfig:"SERVICES_FILE" default:"./services.yaml" validate:"required"`
}

type AlertConfig struct {
	Webhook             string        `envconfig:"ALERT_WEBHOOK" validate:"omitempty,url"`
	ConsecutiveFailures int           `envconfig:"ALERT_CONSECUTIVE_FAILURES" default:"3" validate:"gte=1"`
	Timeout             time.Duration `envconfig:"ALERT_TIMEOUT" default:"10s" validate:"gt=0"`
}

type MailConfig struct {
	Host            string   `envconfig:"MAIL_HOST"`
	Port            int      `envconfig:"MAIL_PORT" default:"587"`
	Email           string   `envconfig:"MAIL_EMAIL"`
	Password        string   `envconfig:"MAIL_PASSWORD"`
	AlertRecipients []string `envconfig:"MAIL_ALERT_RECIPIENTS" validate:"dive,email"`
}

// Enabled reports whether alerts should also go out by mail.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && len(m.AlertRecipients) > 0
}

type KafkaConfig struct {
	Brokers    []string `envconfig:"KAFKA_BROKERS"`
	CheckTopic string   `envconfig:"KAFKA_CHECK_TOPIC" default:"service_checks"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

func LoadConfig(path string) (AppConfig, error) {
	_ = godotenv.Load(path)

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("LoadConfig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("LoadConfig: %w", err)
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Monitor.ScheduleMode == "cron" && c.Monitor.CheckInterval < time.Minute {
		return fmt.Errorf("CHECK_INTERVAL must be at least 1m in cron mode, got %s", c.Monitor.CheckInterval)
	}
	return nil
}
