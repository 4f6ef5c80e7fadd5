package service

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

// ErrInvalidEmail is returned for addresses that fail screening.
var ErrInvalidEmail = errors.New("invalid email address")

const defaultPhoneRegion = "US"

// ContactValidator holds the normalization rules applied to manually created
// contacts. Bulk imports deliberately bypass it; imported rows are taken as
// supplied and only checked for required fields.
type ContactValidator struct {
	DefaultRegion string
}

// NewContactValidator builds a validator with sensible defaults.
func NewContactValidator(defaultRegion string) *ContactValidator {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &ContactValidator{DefaultRegion: region}
}

// ValidateEmail lowercases and screens an email address, returning the
// normalized form.
func (v *ContactValidator) ValidateEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	parts := strings.SplitN(email, "@", 2)
	domain := parts[1]
	if !isDomainValid(domain) {
		return "", fmt.Errorf("%w: bad domain", ErrInvalidEmail)
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" {
		return "", fmt.Errorf("%w: bad domain", ErrInvalidEmail)
	}
	return parts[0] + "@" + asciiDomain, nil
}

// NormalizePhone parses a phone number and renders it in E.164, or returns
// the empty string for anything unparseable. Phone numbers are optional, so
// a bad value degrades to absent rather than failing the record.
func (v *ContactValidator) NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, v.DefaultRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// SanitizeLinkedIn canonicalizes a LinkedIn profile URL, returning the empty
// string when the value is not a linkedin.com URL.
func (v *ContactValidator) SanitizeLinkedIn(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	if host != "linkedin.com" && !strings.HasSuffix(host, ".linkedin.com") {
		return ""
	}
	u.Scheme = "https"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
