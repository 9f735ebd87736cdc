package model

import "time"

const (
	DefaultTimeout            = 10 * time.Second
	DefaultExpectedStatusCode = 200
)

type ServiceConfig struct {
	ID                 string
	Name               string
	Endpoint           string
	Timeout            time.Duration
	ExpectedStatusCode int
}
