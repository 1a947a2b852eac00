package digest

import "net/http"

// Transport is an http.RoundTripper that attaches an RFC 3230 Digest
// header to every outgoing request, computed over the request body.
//
// Use NewTransport to create a Transport with a configured *http.Transport
// for proxy, TLS, and timeout settings.
type Transport struct {
	base       http.RoundTripper
	algorithms []Algorithm
}

// NewTransport creates a Transport that digests each request body with the
// given algorithms before delegating to base. When no algorithms are
// given, SHA-256 is used. When base is nil, a clone of
// http.DefaultTransport is used, giving an independent connection pool
// with default proxy, TLS, and timeout settings.
func NewTransport(base *http.Transport, algorithms ...Algorithm) *Transport {
	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	if len(algorithms) == 0 {
		algorithms = []Algorithm{SHA256}
	}

	return &Transport{
		base:       rt,
		algorithms: algorithms,
	}
}

// RoundTrip attaches the Digest header and then delegates to the base
// transport. The original request is cloned before mutation. When GetBody
// is available, the clone receives its own body copy so that digest
// computation does not consume the caller's body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if clone.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	if err := SetHeader(clone, t.algorithms...); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(clone)
}
