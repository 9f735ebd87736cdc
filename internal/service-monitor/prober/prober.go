package prober

import (
	"Service_Monitor/internal/service-monitor/model"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"
)

//go:generate mockgen -source=prober.go -destination=../mocks/prober/mock_prober.go -package=mockprober

const (
	ErrCodeTimeout     = "ETIMEDOUT"
	ErrCodeRefused     = "ECONNREFUSED"
	ErrCodeReset       = "ECONNRESET"
	ErrCodeNotFound    = "ENOTFOUND"
	ErrCodeCertificate = "ECERT"
	ErrCodeTLS         = "ETLS"
	ErrCodeCanceled    = "ECANCELED"
	ErrCodeInvalidURL  = "EINVALIDURL"

	userAgent    = "Service-Monitor/1.0"
	maxRedirects = 10
	maxBodyDrain = 64 << 10
)

type Prober interface {
	// Probe never fails: every outcome is encoded in the returned CheckResult.
	Probe(ctx context.Context, service model.ServiceConfig) model.CheckResult
}

type httpProber struct {
	client *http.Client
	now    func() time.Time
}

func (p *httpProber) Probe(ctx context.Context, service model.ServiceConfig) model.CheckResult {
	timeout := service.Timeout
	if timeout <= 0 {
		timeout = model.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := p.now()
	check := model.CheckResult{
		Timestamp: start,
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, service.Endpoint, nil)
	if err != nil {
		check.Status = model.CheckStatusDown
		check.Error = ErrCodeInvalidURL
		check.ResponseTimeMs = p.now().Sub(start).Milliseconds()
		return check
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	check.ResponseTimeMs = p.now().Sub(start).Milliseconds()
	if err != nil {
		check.Status = model.CheckStatusDown
		check.Error = ClassifyError(err)
		return check
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyDrain))
	resp.Body.Close()

	if resp.StatusCode == service.ExpectedStatusCode {
		check.Status = model.CheckStatusUp
		return check
	}
	check.Status = model.CheckStatusDown
	check.Error = fmt.Sprintf("Expected %d, got %d", service.ExpectedStatusCode, resp.StatusCode)
	return check
}

// ClassifyError maps a transport failure to a short machine-readable code.
func ClassifyError(err error) string {
	var netErr net.Error
	var dnsErr *net.DNSError
	var certErr *tls.CertificateVerificationError
	var unknownAuthority x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var invalidCert x509.CertificateInvalidError
	var recordErr tls.RecordHeaderError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrCodeTimeout
	case errors.Is(err, context.Canceled):
		return ErrCodeCanceled
	case errors.Is(err, syscall.ECONNREFUSED):
		return ErrCodeRefused
	case errors.Is(err, syscall.ECONNRESET):
		return ErrCodeReset
	case errors.As(err, &dnsErr):
		return ErrCodeNotFound
	case errors.As(err, &certErr), errors.As(err, &unknownAuthority), errors.As(err, &hostnameErr), errors.As(err, &invalidCert):
		return ErrCodeCertificate
	case errors.As(err, &recordErr):
		return ErrCodeTLS
	default:
		return err.Error()
	}
}

func NewProber() Prober {
	return newProber(&http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}, time.Now)
}

func newProber(client *http.Client, now func() time.Time) Prober {
	return &httpProber{
		client: client,
		now:    now,
	}
}
