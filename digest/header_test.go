package digest

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, fmt.Errorf("read error") }
func (errReader) Close() error             { return nil }

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []Entry
	}{
		{
			name:  "single entry",
			value: "sha-256=abc123",
			want:  []Entry{{Token: "sha-256", Value: "abc123"}},
		},
		{
			name:  "multiple entries preserve order",
			value: "md5=one, sha-256=two, sha-512=three",
			want: []Entry{
				{Token: "md5", Value: "one"},
				{Token: "sha-256", Value: "two"},
				{Token: "sha-512", Value: "three"},
			},
		},
		{
			name:  "duplicates are kept",
			value: "sha-256=one,sha-256=two",
			want: []Entry{
				{Token: "sha-256", Value: "one"},
				{Token: "sha-256", Value: "two"},
			},
		},
		{
			name:  "whitespace around token and value is trimmed",
			value: "  sha-256 = abc==  ",
			want:  []Entry{{Token: "sha-256", Value: "abc=="}},
		},
		{
			name:  "value keeps everything after the first equals",
			value: "sha-256=abc==",
			want:  []Entry{{Token: "sha-256", Value: "abc=="}},
		},
		{
			name:  "unknown tokens are retained",
			value: "blake2b=whatever",
			want:  []Entry{{Token: "blake2b", Value: "whatever"}},
		},
		{
			name:  "segment without equals is kept as malformed",
			value: "sha-256=ok, garbage",
			want: []Entry{
				{Token: "sha-256", Value: "ok"},
				{Token: "garbage", Malformed: true},
			},
		},
		{
			name:  "empty value parses to no entries",
			value: "",
			want:  nil,
		},
		{
			name:  "only separators parse to no entries",
			value: " , ,",
			want:  nil,
		},
		{
			name:  "control characters invalidate the whole value",
			value: "sha-256=abc\x00def",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHeader(tt.value))
		})
	}
}

func TestMakeHeader(t *testing.T) {
	body := []byte("hello world")

	t.Run("single algorithm", func(t *testing.T) {
		proposal, err := MakeHeader(body, SHA256)
		require.NoError(t, err)

		assert.Equal(t, "Digest", proposal.Name)
		assert.Equal(t, "sha-256="+SHA256.Digest(body), proposal.Value)
		assert.Empty(t, proposal.Description)
	})

	t.Run("multiple algorithms join in order", func(t *testing.T) {
		proposal, err := MakeHeader(body, SHA512, UnixCksum)
		require.NoError(t, err)

		want := "sha-512=" + SHA512.Digest(body) + ", unixcksum=" + UnixCksum.Digest(body)
		assert.Equal(t, want, proposal.Value)
	})

	t.Run("no algorithms", func(t *testing.T) {
		_, err := MakeHeader(body)
		assert.ErrorIs(t, err, ErrNoAlgorithms)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := MakeHeader(body, Algorithm("blake2b"))
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	})

	t.Run("round-trips through the parser", func(t *testing.T) {
		proposal, err := MakeHeader(body, SHA512, SHA256, UnixSum)
		require.NoError(t, err)

		entries := ParseHeader(proposal.Value)
		require.Len(t, entries, 3)
		assert.Equal(t, "sha-512", entries[0].Token)
		assert.Equal(t, "sha-256", entries[1].Token)
		assert.Equal(t, "unixsum", entries[2].Token)
	})
}

func TestSetHeader(t *testing.T) {
	t.Run("sets header and restores body", func(t *testing.T) {
		body := "hello world"
		req := httptest.NewRequest("POST", "https://example.com/", strings.NewReader(body))

		err := SetHeader(req, SHA256)
		require.NoError(t, err)

		assert.Equal(t, "sha-256="+SHA256.Digest([]byte(body)), req.Header.Get(HeaderName))

		restored, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.Equal(t, body, string(restored))
	})

	t.Run("nil body digests empty bytes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "https://example.com/", nil)
		req.Body = nil

		err := SetHeader(req, SHA256)
		require.NoError(t, err)

		assert.Equal(t, "sha-256="+SHA256.Digest(nil), req.Header.Get(HeaderName))
	})

	t.Run("broken body reader", func(t *testing.T) {
		req := httptest.NewRequest("POST", "https://example.com/", errReader{})

		err := SetHeader(req, SHA256)
		assert.Error(t, err)
	})

	t.Run("no algorithms", func(t *testing.T) {
		req := httptest.NewRequest("POST", "https://example.com/", strings.NewReader("body"))

		err := SetHeader(req)
		assert.ErrorIs(t, err, ErrNoAlgorithms)
	})
}
