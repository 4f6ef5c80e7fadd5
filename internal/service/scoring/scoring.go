package scoring

import (
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/amfdata/contact-exchange/internal/entity"
)

const (
	categoryIdentity     = "identity_completeness"
	categoryReachability = "reachability"
	categoryFirmographic = "firmographic_detail"
	categoryFreshness    = "data_freshness"
)

var freeHostingDomains = []string{
	"wordpress.com",
	"blogspot.com",
	"wixsite.com",
	"weebly.com",
	"squarespace.com",
	"medium.com",
	"substack.com",
	"godaddysites.com",
	"notion.site",
	"googlepages.com",
}

// ScoreResult reports the aggregate score and the per-category breakdown.
type ScoreResult struct {
	Total     int
	Breakdown map[string]int
}

// ComputeScore evaluates a contact record's data quality out of 100.
func ComputeScore(c entity.Contact) ScoreResult {
	breakdown := map[string]int{
		categoryIdentity:     scoreIdentity(c),
		categoryReachability: scoreReachability(c),
		categoryFirmographic: scoreFirmographics(c),
		categoryFreshness:    scoreFreshness(c),
	}

	total := 0
	for _, value := range breakdown {
		total += value
	}

	return ScoreResult{
		Total:     total,
		Breakdown: breakdown,
	}
}

func scoreIdentity(c entity.Contact) int {
	score := 0
	if strings.TrimSpace(c.FullName) != "" {
		score += 10
	}
	if strings.TrimSpace(c.JobTitle) != "" {
		score += 10
	}
	if strings.TrimSpace(c.JobLevel) != "" {
		score += 5
	}
	if strings.TrimSpace(c.JobRole) != "" {
		score += 5
	}
	if score > 30 {
		return 30
	}
	return score
}

func scoreReachability(c entity.Contact) int {
	score := 0
	if strings.TrimSpace(c.Phone) != "" || strings.TrimSpace(c.DirectPhone) != "" {
		score += 10
	}
	if strings.TrimSpace(c.DirectPhone) != "" {
		score += 5
	}
	if strings.TrimSpace(c.ContactLinkedIn) != "" {
		score += 10
	}
	if hasCompleteAddress(addressLine(c)) {
		score += 5
	}
	if score > 30 {
		return 30
	}
	return score
}

func scoreFirmographics(c entity.Contact) int {
	score := 0
	if strings.TrimSpace(c.Industry) != "" {
		score += 5
	}
	if strings.TrimSpace(c.EmployeeSize) != "" {
		score += 5
	}
	if strings.TrimSpace(c.Revenue) != "" {
		score += 5
	}
	if highQualityDomain(c.Website) {
		score += 5
	}
	if score > 20 {
		return 20
	}
	return score
}

func scoreFreshness(c entity.Contact) int {
	score := 0
	if c.LastUpdateDate != nil && time.Since(*c.LastUpdateDate) < 365*24*time.Hour {
		score += 10
	}
	if c.SyncDate != nil {
		score += 10
	}
	if score > 20 {
		return 20
	}
	return score
}

func addressLine(c entity.Contact) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{c.Address1, c.City, c.State, c.ZipCode} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	return strings.Join(parts, ", ")
}

func hasCompleteAddress(raw string) bool {
	addr := strings.TrimSpace(raw)
	if len(addr) < 10 {
		return false
	}
	var hasLetter, hasDigit bool
	separatorCount := 0
	for _, r := range addr {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case r == ',':
			separatorCount++
		}
	}
	return hasLetter && hasDigit && separatorCount >= 1
}

func highQualityDomain(raw string) bool {
	domain := extractDomain(raw)
	if domain == "" {
		return false
	}
	for _, bad := range freeHostingDomains {
		if domain == bad || strings.HasSuffix(domain, "."+bad) {
			return false
		}
	}
	return strings.Count(domain, ".") >= 1
}

func extractDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lowered := strings.ToLower(raw)
	if !strings.Contains(lowered, "://") {
		lowered = "https://" + lowered
	}
	parsed, err := url.Parse(lowered)
	if err != nil {
		return ""
	}
	host := strings.TrimSpace(strings.ToLower(parsed.Host))
	host = strings.TrimPrefix(host, "www.")
	return host
}
