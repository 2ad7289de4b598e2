package mirror

import (
	"slices"
	"strings"
)

// delim is the structural line delimiter. CR bytes in CRLF input stay
// attached to their line and round-trip untouched.
const delim = "\n"

// reverseChunk returns the lines of chunk in reverse order and whether the
// chunk ended with a delimiter. The returned text carries a trailing
// delimiter iff the chunk did, so repeated prepends round-trip the file's
// overall trailing-newline state.
func reverseChunk(chunk []byte) (string, bool) {
	if len(chunk) == 0 {
		return "", false
	}

	text := string(chunk)
	endsWithDelim := strings.HasSuffix(text, delim)

	lines := strings.Split(text, delim)
	if endsWithDelim {
		// Split yields one trailing empty element for a delimited chunk.
		// Dropping it here keeps it from becoming a leading blank line.
		lines = lines[:len(lines)-1]
	}

	slices.Reverse(lines)

	reversed := strings.Join(lines, delim)
	if endsWithDelim {
		reversed += delim
	}
	return reversed, endsWithDelim
}
