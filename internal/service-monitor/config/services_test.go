package config

import (
	"Service_Monitor/internal/service-monitor/model"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServices(t *testing.T) {
	t.Setenv("CRYPTO_TRACKER_URL", "https://crypto.internal/health")

	data := []byte(`
services:
  - id: crypto-tracker
    name: Crypto Regulatory Tracker
    type: http
    endpoint: ${CRYPTO_TRACKER_URL:-https://crypto-tracker.example.com/health}
    timeout_ms: 10000
    expected_status: 200
  - id: ph-scraper
    name: ProductHunt Scraper
    endpoint: ${PH_SCRAPER_URL_UNSET:-https://ph-scraper.example.com/health}
  - id: news
    name: News Digest
    endpoint: https://news.example.com/ping
    timeout_ms: 2500
    expected_status: 204
`)
	services, err := ParseServices(data)
	require.NoError(t, err)

	assert.Equal(t, []model.ServiceConfig{
		{ID: "crypto-tracker", Name: "Crypto Regulatory Tracker", Endpoint: "https://crypto.internal/health", Timeout: 10 * time.Second, ExpectedStatusCode: 200},
		{ID: "ph-scraper", Name: "ProductHunt Scraper", Endpoint: "https://ph-scraper.example.com/health", Timeout: model.DefaultTimeout, ExpectedStatusCode: model.DefaultExpectedStatusCode},
		{ID: "news", Name: "News Digest", Endpoint: "https://news.example.com/ping", Timeout: 2500 * time.Millisecond, ExpectedStatusCode: 204},
	}, services)
}

func TestParseServices_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{
			name: "duplicate ids",
			yaml: "services:\n  - {id: a, name: A, endpoint: https://a.example.com}\n  - {id: a, name: B, endpoint: https://b.example.com}\n",
		},
		{
			name: "missing id",
			yaml: "services:\n  - {name: A, endpoint: https://a.example.com}\n",
		},
		{
			name: "endpoint is not a url",
			yaml: "services:\n  - {id: a, name: A, endpoint: nowhere}\n",
		},
		{
			name: "zero timeout",
			yaml: "services:\n  - {id: a, name: A, endpoint: https://a.example.com, timeout_ms: 0}\n",
		},
		{
			name: "status out of range",
			yaml: "services:\n  - {id: a, name: A, endpoint: https://a.example.com, expected_status: 42}\n",
		},
		{
			name: "unsupported type",
			yaml: "services:\n  - {id: a, name: A, type: tcp, endpoint: https://a.example.com}\n",
		},
		{
			name: "no services",
			yaml: "services: []\n",
		},
		{
			name: "malformed yaml",
			yaml: "services: [\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseServices([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadServices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte("services:\n  - {id: a, name: A, endpoint: https://a.example.com/health}\n"), 0o600))

	services, err := LoadServices(path)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "a", services[0].ID)

	_, err = LoadServices(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseServices_KeepsBareDollar(t *testing.T) {
	t.Setenv("sig", "should-not-be-used")
	t.Setenv("HEALTH_HOST", "svc.internal")

	data := []byte(`
services:
  - id: signed
    name: Signed Endpoint
    endpoint: https://${HEALTH_HOST}/health?sig=$sig&price=$5
`)
	services, err := ParseServices(data)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "https://svc.internal/health?sig=$sig&price=$5", services[0].Endpoint)
}
