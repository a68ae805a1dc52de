package sdk

import "net/http"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// WithBaseURL points the client at a listdex deployment.
func WithBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = baseURL
	})
}

// WithAPIKey sets the bearer token sent on every request.
func WithAPIKey(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = apiKey
	})
}

// WithHTTPClient overrides the underlying HTTP client (timeouts, transport).
func WithHTTPClient(httpClient *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	})
}
