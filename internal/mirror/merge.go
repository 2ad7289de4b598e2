package mirror

import "strings"

// joinReversed places a freshly reversed block in front of the existing
// reversed content with exactly one delimiter at the seam.
//
// If the block carries a trailing delimiter it is dropped before the seam
// delimiter is inserted, so a delimited block never produces a blank line.
// Only one delimiter is dropped; intentional empty lines inside the block
// survive. The existing content's own tail is never touched, which keeps the
// file's overall trailing-newline state owned by the oldest data.
func joinReversed(block, existing string) string {
	if existing == "" {
		return block
	}
	if block == "" {
		return existing
	}
	return strings.TrimSuffix(block, delim) + delim + existing
}
