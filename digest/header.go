package digest

import (
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// HeaderName is the HTTP header field carrying instance digests per
// RFC 3230. The same field name is used on requests and responses.
const HeaderName = "Digest"

// Entry is a single algorithm=value pair from a Digest header, preserving
// the token and value exactly as written. Unknown tokens are retained; they
// are treated as non-matching during verification rather than rejected.
type Entry struct {
	// Token is the algorithm token as it appeared in the header.
	Token string

	// Value is the encoded digest value as it appeared in the header.
	Value string

	// Malformed marks a segment that carried no "=" separator. Malformed
	// entries are kept so the header is reported as provided-but-unusable
	// instead of silently shrinking.
	Malformed bool
}

// ParseHeader parses a raw Digest header value into its ordered entries.
// Segments are split on commas, each segment on the first "=", with
// surrounding whitespace trimmed. Order is preserved and duplicates are
// kept. A present-but-empty header parses to zero entries; absence of the
// header entirely is distinguished by the caller, not here.
func ParseHeader(value string) []Entry {
	if !httpguts.ValidHeaderFieldValue(value) {
		return nil
	}

	var entries []Entry

	for _, segment := range strings.Split(value, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		token, val, ok := strings.Cut(segment, "=")
		if !ok {
			entries = append(entries, Entry{Token: segment, Malformed: true})
			continue
		}

		entries = append(entries, Entry{
			Token: strings.TrimSpace(token),
			Value: strings.TrimSpace(val),
		})
	}

	return entries
}

// MakeHeader computes digests of instance with each given algorithm and
// assembles the RFC 3230 header value: comma-joined algorithm=value pairs
// in the order given.
//
// It returns ErrNoAlgorithms when algs is empty and ErrUnknownAlgorithm
// when an algorithm outside the registered set is given.
func MakeHeader(instance []byte, algs ...Algorithm) (Proposal, error) {
	if len(algs) == 0 {
		return Proposal{}, ErrNoAlgorithms
	}

	pairs := make([]string, 0, len(algs))
	for _, alg := range algs {
		if _, ok := ResolveAlgorithm(string(alg)); !ok {
			return Proposal{}, ErrUnknownAlgorithm
		}

		pairs = append(pairs, string(alg)+"="+alg.Digest(instance))
	}

	return Proposal{
		Name:  HeaderName,
		Value: strings.Join(pairs, ", "),
	}, nil
}

// SetHeader reads the request body, computes digests with the given
// algorithms, sets the Digest header, and replaces the body so it can be
// read again by the transport or downstream handlers.
func SetHeader(r *http.Request, algs ...Algorithm) error {
	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	proposal, err := MakeHeader(body, algs...)
	if err != nil {
		return err
	}

	r.Header.Set(proposal.Name, proposal.Value)

	return nil
}
