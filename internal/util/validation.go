package util

import "regexp"

var rendezvousCodeRegex = regexp.MustCompile(`^\d{6}$`)

// IsValidRendezvousCode reports whether s is a 6-digit numeric code.
func IsValidRendezvousCode(s string) bool {
	return rendezvousCodeRegex.MatchString(s)
}

// MaskCode redacts a rendezvous code for logging.
func MaskCode(code string) string {
	if len(code) < 2 {
		return "******"
	}
	return code[:2] + "****"
}
