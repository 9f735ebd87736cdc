package config

import (
	"Service_Monitor/internal/service-monitor/model"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type serviceEntry struct {
	ID             string `yaml:"id" validate:"required"`
	Name           string `yaml:"name" validate:"required"`
	Type           string `yaml:"type" validate:"omitempty,oneof=http"`
	Endpoint       string `yaml:"endpoint" validate:"required,url"`
	TimeoutMs      *int   `yaml:"timeout_ms" validate:"omitempty,gt=0"`
	ExpectedStatus *int   `yaml:"expected_status" validate:"omitempty,gte=100,lte=599"`
}

type servicesFile struct {
	Services []serviceEntry `yaml:"services" validate:"required,min=1,unique=ID,dive"`
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// LoadServices reads the monitored services from a YAML file. ${VAR} and ${VAR:-fallback}
// references are expanded from the environment before parsing. A bare $ is kept as is.
func LoadServices(path string) ([]model.ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadServices: %w", err)
	}
	services, err := ParseServices(data)
	if err != nil {
		return nil, fmt.Errorf("LoadServices %s: %w", path, err)
	}
	return services, nil
}

func ParseServices(data []byte) ([]model.ServiceConfig, error) {
	var file servicesFile
	if err := yaml.Unmarshal(expandEnv(data), &file); err != nil {
		return nil, fmt.Errorf("ParseServices: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("ParseServices: %w", err)
	}

	services := make([]model.ServiceConfig, 0, len(file.Services))
	for _, e := range file.Services {
		svc := model.ServiceConfig{
			ID:                 e.ID,
			Name:               e.Name,
			Endpoint:           e.Endpoint,
			Timeout:            model.DefaultTimeout,
			ExpectedStatusCode: model.DefaultExpectedStatusCode,
		}
		if e.TimeoutMs != nil {
			svc.Timeout = time.Duration(*e.TimeoutMs) * time.Millisecond
		}
		if e.ExpectedStatus != nil {
			svc.ExpectedStatusCode = *e.ExpectedStatus
		}
		services = append(services, svc)
	}
	return services, nil
}

func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		return []byte(lookupEnv(string(ref[2 : len(ref)-1])))
	})
}

func lookupEnv(key string) string {
	name, fallback, hasFallback := strings.Cut(key, ":-")
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	if hasFallback {
		return fallback
	}
	return ""
}
