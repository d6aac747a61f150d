package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MembershipIDPrefix is the literal prefix of every membership identifier
	MembershipIDPrefix = "M"
	// membershipIDDigits is the zero-padded width of the numeric suffix
	membershipIDDigits = 5
)

// FormatMembershipID renders a sequence number as a membership identifier,
// e.g. 1 -> "M00001"
func FormatMembershipID(seq int) string {
	return fmt.Sprintf("%s%0*d", MembershipIDPrefix, membershipIDDigits, seq)
}

// ParseMembershipID extracts the numeric suffix of a membership identifier
func ParseMembershipID(id string) (int, error) {
	if !strings.HasPrefix(id, MembershipIDPrefix) {
		return 0, fmt.Errorf("%w: malformed membership id %q", ErrValidation, id)
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(id, MembershipIDPrefix))
	if err != nil {
		return 0, fmt.Errorf("%w: malformed membership id %q", ErrValidation, id)
	}
	return seq, nil
}

// NextMembershipID returns the identifier following the given highest-assigned
// one. An empty highest yields the first identifier, "M00001".
func NextMembershipID(highest string) (string, error) {
	if highest == "" {
		return FormatMembershipID(1), nil
	}
	seq, err := ParseMembershipID(highest)
	if err != nil {
		return "", err
	}
	return FormatMembershipID(seq + 1), nil
}
