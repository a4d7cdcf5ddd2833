package lexcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum_Deterministic(t *testing.T) {
	buf, err := Encode(compositeKey{Shard: 1, Name: "a", Active: true})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, Checksum(buf), Checksum(buf))
}

func TestChecksum_DiffersOnDifferentInput(t *testing.T) {
	assert.NotEqual(t, Checksum([]byte("a")), Checksum([]byte("b")))
}
