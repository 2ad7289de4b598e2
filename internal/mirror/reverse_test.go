package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseChunkDelimited(t *testing.T) {
	out, delimited := reverseChunk([]byte("a\nb\nc\n"))
	assert.Equal(t, "c\nb\na\n", out)
	assert.True(t, delimited)
}

func TestReverseChunkOpenTail(t *testing.T) {
	out, delimited := reverseChunk([]byte("a\nb\nc"))
	assert.Equal(t, "c\nb\na", out)
	assert.False(t, delimited)
}

func TestReverseChunkEmpty(t *testing.T) {
	out, delimited := reverseChunk(nil)
	assert.Equal(t, "", out)
	assert.False(t, delimited)
}

func TestReverseChunkSingleLineNoDelim(t *testing.T) {
	out, delimited := reverseChunk([]byte("only"))
	assert.Equal(t, "only", out)
	assert.False(t, delimited)
}

func TestReverseChunkDelimitersOnly(t *testing.T) {
	// blank lines keep their count and order
	out, delimited := reverseChunk([]byte("\n\n\n"))
	assert.Equal(t, "\n\n\n", out)
	assert.True(t, delimited)
}

func TestReverseChunkPreservesCR(t *testing.T) {
	// \r is payload, not structure
	out, delimited := reverseChunk([]byte("a\r\nb\r\n"))
	assert.Equal(t, "b\r\na\r\n", out)
	assert.True(t, delimited)
}

func TestReverseChunkRoundTripsLength(t *testing.T) {
	for _, in := range []string{"", "x", "x\n", "a\nb", "a\nb\n", "\n", "\n\nz"} {
		out, _ := reverseChunk([]byte(in))
		assert.Len(t, out, len(in), "input %q", in)
	}
}
