package digest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preference expresses how strongly the policy accepts an algorithm. It is
// a three-state value: explicitly forbidden (qvalue 0.0), accepted with a
// numeric qvalue in (0.0, 1.0], or accepted with default preference
// (no qvalue given). The zero value is forbidden.
type Preference struct {
	qvalue  float64
	defined bool
}

// Weight returns a Preference with an explicit qvalue. A qvalue of 0.0
// forbids the algorithm outright; higher values are preferred during
// negotiation.
func Weight(qvalue float64) Preference {
	return Preference{qvalue: qvalue, defined: true}
}

// Accept returns a Preference that accepts the algorithm with default
// preference, distinct from any explicit qvalue.
func Accept() Preference {
	return Preference{}
}

// Forbidden reports whether the preference carries an explicit qvalue of
// 0.0.
func (p Preference) Forbidden() bool {
	return p.defined && p.qvalue == 0
}

// weight returns the effective negotiation weight. Default preference
// weighs 1.0.
func (p Preference) weight() float64 {
	if !p.defined {
		return 1.0
	}

	return p.qvalue
}

// UnmarshalYAML decodes a preference from a YAML policy document. A number
// is an explicit qvalue; null or the string "default" is default
// preference.
func (p *Preference) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" || strings.EqualFold(node.Value, "default") {
		*p = Accept()
		return nil
	}

	var qvalue float64
	if err := node.Decode(&qvalue); err != nil {
		return fmt.Errorf("digest: invalid qvalue %q: %w", node.Value, err)
	}

	if qvalue < 0 || qvalue > 1 {
		return fmt.Errorf("digest: qvalue %v out of range [0.0, 1.0]", qvalue)
	}

	*p = Weight(qvalue)

	return nil
}

// Policy maps algorithms to acceptance preferences. Algorithms absent from
// the map are implicitly not accepted, which is distinct from an explicit
// qvalue of 0.0 only in the failure reason reported to clients.
//
// A Policy is configured once per deployment and read concurrently without
// locking; it must not be mutated after first use.
type Policy map[Algorithm]Preference

// DefaultPolicy accepts only SHA-256, with default preference, and
// explicitly forbids the weaker algorithms.
func DefaultPolicy() Policy {
	return Policy{
		SHA256:    Accept(),
		SHA:       Weight(0),
		MD5:       Weight(0),
		UnixSum:   Weight(0),
		UnixCksum: Weight(0),
	}
}

// ParsePolicy decodes a YAML policy document mapping algorithm tokens to
// qvalues (or "default"/null for default preference):
//
//	sha-512: 1.0
//	sha-256: default
//	md5: 0.0
//
// Unknown algorithm tokens are rejected so that configuration typos fail
// at startup rather than silently weakening the policy.
func ParsePolicy(data []byte) (Policy, error) {
	var raw map[string]Preference
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("digest: parse policy: %w", err)
	}

	policy := make(Policy, len(raw))
	for token, pref := range raw {
		alg, ok := ResolveAlgorithm(token)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, token)
		}

		policy[alg] = pref
	}

	return policy, nil
}

// Negotiate selects the algorithm a client should be told to use: the
// acceptable algorithm with the highest weight, ties broken strongest
// first (SHA-512, SHA-256, SHA-1, MD5, UNIX cksum, UNIX sum). It reports
// false when the policy accepts nothing, which means no request can ever
// validate.
func (p Policy) Negotiate() (Algorithm, bool) {
	var (
		best       Algorithm
		bestWeight float64
		found      bool
	)

	for _, alg := range preferenceOrder {
		pref, ok := p[alg]
		if !ok || pref.Forbidden() {
			continue
		}

		if w := pref.weight(); !found || w > bestWeight {
			best, bestWeight, found = alg, w, true
		}
	}

	return best, found
}

// acceptable reports whether the policy accepts the algorithm, either with
// a nonzero qvalue or default preference.
func (p Policy) acceptable(alg Algorithm) bool {
	pref, ok := p[alg]
	return ok && !pref.Forbidden()
}
