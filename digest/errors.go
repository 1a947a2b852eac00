package digest

import "errors"

// Verification errors. All of these are recoverable validation outcomes
// carried in Result.Reason; the engine never panics on malformed input.
var (
	// ErrMissingHeader is returned when the request carries no Digest
	// header at all. Distinct from a present-but-empty header, which
	// yields ErrNoAcceptableAlgorithm.
	ErrMissingHeader = errors.New("digest: missing Digest header")

	// ErrNoAcceptableAlgorithm is returned when the Digest header is
	// present but no entry names an algorithm the policy accepts.
	ErrNoAcceptableAlgorithm = errors.New("digest: no acceptable algorithm provided in Digest header")

	// ErrAlgorithmNotAcceptable is returned when an entry names a
	// recognized algorithm the policy explicitly forbids (qvalue 0.0).
	ErrAlgorithmNotAcceptable = errors.New("digest: algorithm not acceptable")

	// ErrNoValueMatched is returned when an acceptable algorithm was
	// provided but its digest value did not match the recomputed digest.
	// This is the tamper/corruption signal.
	ErrNoValueMatched = errors.New("digest: no Digest value matched")
)

// Configuration errors.
var (
	// ErrNoAlgorithmConfigured is returned when the acceptance policy
	// forbids or omits every algorithm, so no request can ever validate.
	// This is a deployment misconfiguration, not a client failure, and
	// should be surfaced to operators.
	ErrNoAlgorithmConfigured = errors.New("digest: no acceptable algorithm configured")

	// ErrNoAlgorithms is returned when MakeHeader or SetHeader is called
	// with an empty algorithm list.
	ErrNoAlgorithms = errors.New("digest: at least one algorithm is required")

	// ErrUnknownAlgorithm is returned when MakeHeader or SetHeader is
	// given an algorithm outside the registered set.
	ErrUnknownAlgorithm = errors.New("digest: unknown digest algorithm")
)
