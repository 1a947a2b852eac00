package digest

import (
	"fmt"
	"net/http"
)

// Proposal is a Digest header the caller should attach to an outgoing
// message: either the exemplar returned alongside a failed verification,
// or a header built proactively via MakeHeader.
type Proposal struct {
	// Name is the header field name, always "Digest".
	Name string

	// Value is the RFC 3230 header value, comma-joined algorithm=value
	// pairs.
	Value string

	// Description is the human-readable failure text. Empty when the
	// header is supplied proactively rather than after a failure.
	Description string
}

// Result is the verdict of one verification attempt.
//
// When Valid is false, Reason carries one of the sentinel errors from this
// package and Proposed (when the policy permits building one) carries a
// correct exemplar header computed over the same instance bytes with the
// most-preferred acceptable algorithm.
type Result struct {
	Valid    bool
	Proposed *Proposal
	Reason   error
}

// Message returns a human-readable account of a failed verification,
// combining the fixed failure preamble with the specific description.
// It returns an empty string for a valid result.
func (r Result) Message() string {
	if r.Valid {
		return ""
	}

	msg := "Digest header validation failed."

	switch {
	case r.Proposed != nil && r.Proposed.Description != "":
		msg += " " + r.Proposed.Description
	case r.Reason != nil:
		msg += " " + r.Reason.Error()
	}

	return msg
}

// Verify checks the instance bytes against the Digest header in headers
// using the given acceptance policy. A nil policy means DefaultPolicy.
//
// The verdict depends only on the instance bytes, the header value, and
// the policy; verification is deterministic, has no side effects, and is
// safe to run concurrently against a shared read-only policy.
//
// Only the first physical Digest header line is considered; RFC 3230
// values listing multiple digests do so within one line.
func Verify(instance []byte, headers http.Header, policy Policy) Result {
	if policy == nil {
		policy = DefaultPolicy()
	}

	values, present := headers[HeaderName]
	if !present || len(values) == 0 {
		return failure(instance, policy, ErrMissingHeader, "Missing Digest header.")
	}

	return VerifyValue(instance, values[0], policy)
}

// VerifyValue checks the instance bytes against a raw Digest header value
// that is known to be present. Use Verify when absence of the header must
// be distinguished from an empty value.
//
// Entries are examined in header order and the first matching digest wins;
// entries with unrecognized tokens are skipped, so a header may carry
// algorithms this server does not support alongside one it does.
func VerifyValue(instance []byte, value string, policy Policy) Result {
	if policy == nil {
		policy = DefaultPolicy()
	}

	var (
		attempted bool
		forbidden Algorithm
	)

	for _, entry := range ParseHeader(value) {
		if entry.Malformed {
			continue
		}

		alg, ok := ResolveAlgorithm(entry.Token)
		if !ok {
			continue
		}

		pref, mentioned := policy[alg]
		if !mentioned {
			continue
		}

		if pref.Forbidden() {
			if forbidden == "" {
				forbidden = alg
			}

			continue
		}

		attempted = true
		if alg.match(entry.Value, instance) {
			return Result{Valid: true}
		}
	}

	switch {
	case attempted:
		// Acceptable algorithms were provided but no value matched the
		// recomputed digest: the tamper/corruption case.
		return failure(instance, policy, ErrNoValueMatched, "No Digest value matched.")
	case forbidden != "":
		reason := fmt.Errorf("%w: algorithm %s, qvalue is 0.0", ErrAlgorithmNotAcceptable, forbidden)
		description := fmt.Sprintf("Algorithm %s not acceptable. qvalue is 0.0.", forbidden)
		return failure(instance, policy, reason, description)
	default:
		return failure(instance, policy, ErrNoAcceptableAlgorithm, "No acceptable algorithm provided in Digest header.")
	}
}

// failure builds a failed Result carrying an exemplar Digest header
// negotiated from the policy. When the policy accepts nothing at all the
// misconfiguration dominates the client-attributable reason and no header
// can be proposed.
func failure(instance []byte, policy Policy, reason error, description string) Result {
	alg, ok := policy.Negotiate()
	if !ok {
		return Result{Reason: ErrNoAlgorithmConfigured}
	}

	return Result{
		Reason: reason,
		Proposed: &Proposal{
			Name:        HeaderName,
			Value:       string(alg) + "=" + alg.Digest(instance),
			Description: description,
		},
	}
}
