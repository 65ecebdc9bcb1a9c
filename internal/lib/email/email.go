package email

import (
	"strings"

	"github.com/mcnijman/go-emailaddress"

	"labBooker/internal/lib/apperror"
)

// Validate returns an error if the format of an email address is invalid.
func Validate(address string) error {
	_, err := emailaddress.Parse(address)
	return err
}

// Canonical trims and lower-cases an address.
func Canonical(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// NormalizeList canonicalises, validates and de-duplicates a recipient list,
// keeping first-seen order.
func NormalizeList(field string, addresses []string) ([]string, error) {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))

	for _, raw := range addresses {
		addr := Canonical(raw)
		if addr == "" {
			continue
		}
		if err := Validate(addr); err != nil {
			return nil, apperror.Validation(field, apperror.CodeAttendees, "invalid email address %q", raw)
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}

	if len(out) == 0 {
		return nil, apperror.Validation(field, apperror.CodeAttendees, "at least one attendee is required")
	}

	return out, nil
}
