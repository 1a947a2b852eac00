package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnixSum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{name: "empty", data: nil, want: 0},
		{name: "single byte", data: []byte("a"), want: 97},
		{name: "rotation carries low bit", data: []byte("ab"), want: 32914},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unixSum(tt.data))
		})
	}
}

func TestUnixCksum(t *testing.T) {
	t.Run("empty input matches cksum of empty file", func(t *testing.T) {
		assert.Equal(t, uint32(0xffffffff), unixCksum(nil))
	})

	t.Run("length is part of the checksum", func(t *testing.T) {
		// Same leading bytes, different length: data of a single zero
		// byte contributes a length term that empty data does not.
		assert.NotEqual(t, unixCksum(nil), unixCksum([]byte{0}))
	})

	t.Run("deterministic", func(t *testing.T) {
		data := []byte("hello world")
		assert.Equal(t, unixCksum(data), unixCksum(data))
	})
}
