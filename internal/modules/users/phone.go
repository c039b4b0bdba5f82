package users

import (
	"regexp"
	"strings"
)

var nigerianPhone = regexp.MustCompile(`^\+234[789][01]\d{8}$`)

// NormalizePhone rewrites common Nigerian number formats to +234XXXXXXXXXX.
// Accepts 0803..., 234803..., +234803... and strips spaces and dashes.
func NormalizePhone(raw string) (string, bool) {
	s := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))

	switch {
	case strings.HasPrefix(s, "+234"):
		// already international
	case strings.HasPrefix(s, "234"):
		s = "+" + s
	case strings.HasPrefix(s, "0") && len(s) == 11:
		s = "+234" + s[1:]
	}

	if !nigerianPhone.MatchString(s) {
		return "", false
	}
	return s, true
}
