package netsuite

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	account        string
	consumerKey    string
	consumerSecret string
	tokenKey       string
	tokenSecret    string
	endpoint       string
	httpClient     *http.Client
	timeout        time.Duration
	userAgent      string
	logger         *zap.Logger
	registerer     prometheus.Registerer
	retry          *RetryPolicy
	backend        Backend
}

// WithAccount sets the NetSuite account id, e.g. "1234567" or "1234567_SB1".
func WithAccount(account string) ClientOption {
	return func(c *clientConfig) {
		c.account = account
	}
}

// WithTokenAuth sets the token-based authentication credentials of an
// integration record and access token.
func WithTokenAuth(consumerKey, consumerSecret, tokenKey, tokenSecret string) ClientOption {
	return func(c *clientConfig) {
		c.consumerKey = consumerKey
		c.consumerSecret = consumerSecret
		c.tokenKey = tokenKey
		c.tokenSecret = tokenSecret
	}
}

// WithEndpoint overrides the SuiteTalk endpoint derived from the account.
func WithEndpoint(url string) ClientOption {
	return func(c *clientConfig) {
		c.endpoint = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the default request timeout.
// Note: This option is ignored when WithHTTPClient is used;
// set the timeout directly on the provided client instead.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithPrometheus registers operation metrics with reg.
func WithPrometheus(reg prometheus.Registerer) ClientOption {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}

// WithRetry retries rate limited and failed server calls according to p.
func WithRetry(p RetryPolicy) ClientOption {
	return func(c *clientConfig) {
		c.retry = &p
	}
}

// WithBackend replaces the SOAP backend. Account and credentials are not
// required when a backend is supplied.
func WithBackend(b Backend) ClientOption {
	return func(c *clientConfig) {
		c.backend = b
	}
}
