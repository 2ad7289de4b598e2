package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinReversedSeam(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		existing string
		want     string
	}{
		{"empty existing", "c\nb\n", "", "c\nb\n"},
		{"empty block", "", "a\n", "a\n"},
		{"both delimited", "c\nb\n", "a\n", "c\nb\na\n"},
		{"block delimited, existing open", "c\n", "b\na", "c\nb\na"},
		{"block open, existing delimited", "c", "b\na\n", "c\nb\na\n"},
		{"both open", "c", "a", "c\na"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinReversed(tt.block, tt.existing))
		})
	}
}

func TestJoinReversedNoDoubledDelimiter(t *testing.T) {
	got := joinReversed("c\nb\n", "a\n")
	assert.NotContains(t, got, "\n\n")
}

func TestJoinReversedKeepsIntentionalBlankLines(t *testing.T) {
	// only the single trailing delimiter is dropped; an empty line inside
	// the block survives the seam
	got := joinReversed("c\n\n", "a\n")
	assert.Equal(t, "c\n\na\n", got)
}

func TestJoinReversedTailOwnedByOldestData(t *testing.T) {
	// existing content without a trailing delimiter keeps the file open
	got := joinReversed("new\n", "old")
	assert.Equal(t, "new\nold", got)
}
