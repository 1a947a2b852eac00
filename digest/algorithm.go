package digest

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"strconv"
	"strings"
)

// Algorithm identifies a digest algorithm registered for the Digest header
// per RFC 3230 Section 5 and RFC 5843.
type Algorithm string

const (
	// SHA512 is SHA-512, base64 encoded.
	SHA512 Algorithm = "sha-512"

	// SHA256 is SHA-256, base64 encoded.
	SHA256 Algorithm = "sha-256"

	// SHA is SHA-1, base64 encoded. The RFC 3230 wire token is "sha",
	// not "sha-1".
	SHA Algorithm = "sha"

	// MD5 is MD5, base64 encoded.
	MD5 Algorithm = "md5"

	// UnixSum is the BSD sum(1) 16-bit checksum, encoded as decimal.
	UnixSum Algorithm = "unixsum"

	// UnixCksum is the POSIX cksum(1) CRC, encoded as decimal.
	UnixCksum Algorithm = "unixcksum"
)

// String returns the canonical wire token of the algorithm.
func (a Algorithm) String() string {
	return string(a)
}

// preferenceOrder lists every registered algorithm strongest first. It is
// the tie-break order used when negotiating among equally weighted
// algorithms.
var preferenceOrder = []Algorithm{SHA512, SHA256, SHA, MD5, UnixCksum, UnixSum}

// ResolveAlgorithm maps a wire token to a registered Algorithm. Matching is
// case-insensitive on the canonical token. An unrecognized token is a
// normal outcome, not an error; entries carrying one simply never match.
func ResolveAlgorithm(token string) (Algorithm, bool) {
	switch Algorithm(strings.ToLower(token)) {
	case SHA512:
		return SHA512, true
	case SHA256:
		return SHA256, true
	case SHA:
		return SHA, true
	case MD5:
		return MD5, true
	case UnixSum:
		return UnixSum, true
	case UnixCksum:
		return UnixCksum, true
	default:
		return "", false
	}
}

// Digest computes the encoded digest of instance using the algorithm:
// standard base64 for the cryptographic hashes, decimal for the checksum
// algorithms. The computation is pure and deterministic; empty input is
// digested like any other byte sequence.
func (a Algorithm) Digest(instance []byte) string {
	raw, decimal := a.sum(instance)
	if decimal {
		return strconv.FormatUint(uint64(raw[0])<<24|uint64(raw[1])<<16|uint64(raw[2])<<8|uint64(raw[3]), 10)
	}

	return base64.StdEncoding.EncodeToString(raw)
}

// sum returns the raw digest bytes and whether the wire encoding is
// decimal. Checksum values are returned as 4 big-endian bytes.
func (a Algorithm) sum(instance []byte) ([]byte, bool) {
	switch a {
	case SHA512:
		h := sha512.Sum512(instance)
		return h[:], false
	case SHA256:
		h := sha256.Sum256(instance)
		return h[:], false
	case SHA:
		h := sha1.Sum(instance)
		return h[:], false
	case MD5:
		h := md5.Sum(instance)
		return h[:], false
	case UnixSum:
		v := unixSum(instance)
		return []byte{0, 0, byte(v >> 8), byte(v)}, true
	case UnixCksum:
		v := unixCksum(instance)
		return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}, true
	default:
		return nil, false
	}
}

// match reports whether the value from a header entry equals the digest of
// instance, comparing decoded values. Values that cannot be decoded in the
// algorithm's encoding never match.
func (a Algorithm) match(value string, instance []byte) bool {
	switch a {
	case UnixSum, UnixCksum:
		given, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return false
		}

		want, _ := a.sum(instance)
		return given == uint64(want[0])<<24|uint64(want[1])<<16|uint64(want[2])<<8|uint64(want[3])
	default:
		given, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return false
		}

		want, _ := a.sum(instance)
		return len(want) > 0 && bytes.Equal(given, want)
	}
}
