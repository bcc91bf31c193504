package http

import "net/http"

type headersTransport struct {
	headers   map[string]string
	transport http.RoundTripper
}

func (t *headersTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	for k, v := range t.headers {
		if reqCopy.Header.Get(k) == "" {
			reqCopy.Header.Set(k, v)
		}
	}
	return t.transport.RoundTrip(reqCopy)
}

func withStaticHeader(key, value string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headersTransport{
			headers:   map[string]string{key: value},
			transport: rt,
		}
	})
}

// WithAuthToken sends the token as a bearer Authorization header. An empty
// token leaves requests untouched.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return func(*httpConfig) {}
	}
	return withStaticHeader("Authorization", "Bearer "+token)
}

func WithUserAgent(agent string) HttpOpts {
	return withStaticHeader("User-Agent", agent)
}
