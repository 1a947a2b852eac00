// Package digest implements verification and negotiation of the HTTP
// Digest header per RFC 3230.
//
// A sender attaches one or more algorithm-tagged digests of the message
// body in a Digest header; the receiver recomputes the digest over the
// same bytes and accepts the message when one of the provided values
// matches an algorithm its acceptance policy permits. When the header is
// missing or no value matches, the verdict carries a correct exemplar
// header so the sender can see which algorithm to use and what the value
// should have been.
//
// # Supported Algorithms
//
// Six digest algorithms are supported, matching the RFC 3230 and RFC 5843
// registrations:
//
//   - sha-512 (SHA-512, base64)
//   - sha-256 (SHA-256, base64)
//   - sha (SHA-1, base64)
//   - md5 (MD5, base64)
//   - unixcksum (POSIX cksum CRC, decimal)
//   - unixsum (BSD sum checksum, decimal)
//
// # Verifying Instance Bytes
//
// Use Verify to check a body against the Digest header of a request. A nil
// policy accepts only sha-256:
//
//	result := digest.Verify(body, r.Header, nil)
//	if !result.Valid {
//	    // result.Reason is one of the digest.Err* sentinels;
//	    // result.Proposed carries a correct exemplar header.
//	}
//
// # Acceptance Policies
//
// A Policy maps algorithms to qvalue preferences. An explicit qvalue of
// 0.0 forbids an algorithm outright; Accept marks an algorithm accepted
// with default preference; algorithms left out of the map are not
// accepted:
//
//	policy := digest.Policy{
//	    digest.SHA512: digest.Weight(1.0),
//	    digest.SHA256: digest.Accept(),
//	    digest.MD5:    digest.Weight(0),
//	}
//
// Policies can also be parsed from YAML configuration via ParsePolicy.
//
// # Server Middleware
//
// Middleware returns a func(http.Handler) http.Handler that verifies the
// Digest header on incoming requests and answers failures with status 422
// and an exemplar header attached:
//
//	mw, err := digest.Middleware(digest.MiddlewareConfig{
//	    Policy: policy,
//	    Logger: logger,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	handler := mw(next)
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that attaches a Digest header
// to all outgoing requests. Pass an *http.Transport to configure proxy,
// TLS, and timeout settings, or nil for sensible defaults:
//
//	client := &http.Client{
//	    Transport: digest.NewTransport(nil, digest.SHA256),
//	}
//
//	resp, err := client.Post("https://api.example.com/resource", "application/json", body)
package digest
