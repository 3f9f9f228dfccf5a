package utils

import (
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Pool settings of the transport built by NewHTTPClient.
const (
	maxIdleConnsPerHost = 16
	idleConnTimeout     = 90 * time.Second
	dialTimeout         = 10 * time.Second
)

// HTTPClient embeds *resty.Client so request sessions can use its whole API.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with its own connection pool.
// Idle connections to one host are kept for reuse across requests; proxies
// come from the environment.
func NewHTTPClient() *HTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   dialTimeout,
		ExpectContinueTimeout: time.Second,
	}

	return &HTTPClient{Client: resty.New().SetTransport(transport)}
}
