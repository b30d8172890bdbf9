package payments

import (
	"crypto/tls"
	"net/http"
	"time"
)

const (
	chargeTimeout = 10 * time.Second
	queryTimeout  = 10 * time.Second
)

// newProviderHTTPClient builds the outbound client used for provider
// calls: hard per-request timeout, TLS 1.2 minimum, no retries.
func newProviderHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		},
	}
}
