package digest

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MiddlewareFunc wraps an http.Handler with additional behaviour. It is
// compatible with routers that chain func(http.Handler) http.Handler
// middleware.
type MiddlewareFunc func(http.Handler) http.Handler

// ExtractFunc selects the instance bytes to verify from a request. It
// receives the full request and the buffered body, and returns the exact
// byte sequence the sender's digest was computed over (for example a
// single field of a JSON body). The body has already been restored on the
// request by the time ExtractFunc runs.
type ExtractFunc func(r *http.Request, body []byte) ([]byte, error)

// MiddlewareConfig configures the Digest header verification middleware.
type MiddlewareConfig struct {
	// Policy is the acceptance policy shared by all requests. When nil,
	// DefaultPolicy is used. The policy must not be mutated once the
	// middleware is serving.
	Policy Policy

	// Extract selects the instance bytes from the request. When nil, the
	// raw request body is verified.
	Extract ExtractFunc

	// StatusCode is the response status for failed verification.
	// Defaults to 422 Unprocessable Entity; some deployments prefer 400.
	StatusCode int

	// OnError is called when verification fails, with the verdict. When
	// nil, a plain-text response is written with StatusCode, the proposed
	// Digest header, and an X-Error-ID for correlation.
	OnError func(w http.ResponseWriter, r *http.Request, result Result)

	// Logger receives operator-facing events: configuration errors at
	// error level and verification failures at debug level. When nil,
	// nothing is logged.
	Logger *zap.Logger
}

// Middleware returns a middleware that verifies the RFC 3230 Digest header
// on incoming requests against the request body (or the bytes selected by
// Extract). Requests that fail verification are answered directly with a
// correct exemplar Digest header attached; valid requests pass through
// with their body restored for downstream handlers.
//
// It returns ErrNoAlgorithmConfigured when the policy accepts no algorithm
// at all, since such a deployment could never validate any request.
func Middleware(cfg MiddlewareConfig) (MiddlewareFunc, error) {
	policy := cfg.Policy
	if policy == nil {
		policy = DefaultPolicy()
	}

	if _, ok := policy.Negotiate(); !ok {
		return nil, ErrNoAlgorithmConfigured
	}

	status := cfg.StatusCode
	if status == 0 {
		status = http.StatusUnprocessableEntity
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	onError := cfg.OnError
	if onError == nil {
		onError = defaultOnError(status)
	}

	extract := cfg.Extract

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := readAndRestoreBody(r)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}

			instance := body
			if extract != nil {
				instance, err = extract(r, body)
				if err != nil {
					http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
					return
				}
			}

			result := Verify(instance, r.Header, policy)
			if result.Valid {
				next.ServeHTTP(w, r)
				return
			}

			if errors.Is(result.Reason, ErrNoAlgorithmConfigured) {
				logger.Error("digest acceptance policy accepts no algorithm",
					zap.String("path", r.URL.Path))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			logger.Debug("digest verification failed",
				zap.String("path", r.URL.Path),
				zap.Error(result.Reason))

			onError(w, r, result)
		})
	}, nil
}

// defaultOnError writes a plain-text failure response carrying the
// proposed Digest header and a fresh error ID.
func defaultOnError(status int) func(w http.ResponseWriter, r *http.Request, result Result) {
	return func(w http.ResponseWriter, _ *http.Request, result Result) {
		if result.Proposed != nil {
			w.Header().Set(result.Proposed.Name, result.Proposed.Value)
		}

		w.Header().Set("X-Error-ID", uuid.New().String())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)

		_, _ = io.WriteString(w, result.Message())
	}
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can be consumed again by downstream handlers.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
