package sanitize

import "regexp"

// Compiled PII patterns. Compiled once at package init and shared
// read-only across all callers.
var (
	ssnPattern     = regexp.MustCompile(`\d{3}-\d{2}-\d{4}`)
	phonePattern   = regexp.MustCompile(`\(?\d{3}\)?[-\s.]?\d{3}[-\s.]?\d{4}`)
	emailPattern   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	addressPattern = regexp.MustCompile(`\d+\s+[A-Za-z0-9\s,]+\s+(Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Court|Ct|Boulevard|Blvd|Way|Place|Pl)`)
	zipPattern     = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)
	ipv4Pattern    = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)

	// Internal infrastructure references leaked into free text
	schoolInfoPattern = regexp.MustCompile(`(?i)\b(server|database|schema)\s*:\s*\S+`)
)

// Redaction sentinels for free-form strings on the pass-through path
const (
	ssnSentinel  = "[SSN-REDACTED]"
	ipv4Sentinel = "[IP-REDACTED]"
)

// RedactSSN replaces every SSN literal with a sentinel
func RedactSSN(s, sentinel string) string {
	return ssnPattern.ReplaceAllString(s, sentinel)
}

// RedactPhone replaces every phone literal with a sentinel
func RedactPhone(s, sentinel string) string {
	return phonePattern.ReplaceAllString(s, sentinel)
}

// RedactEmail replaces every email literal with a sentinel
func RedactEmail(s, sentinel string) string {
	return emailPattern.ReplaceAllString(s, sentinel)
}

// RedactAddress replaces every street address literal with a sentinel
func RedactAddress(s, sentinel string) string {
	return addressPattern.ReplaceAllString(s, sentinel)
}

// RedactIPv4 replaces every IPv4 literal with a sentinel
func RedactIPv4(s, sentinel string) string {
	return ipv4Pattern.ReplaceAllString(s, sentinel)
}

// RedactZIP replaces every ZIP code with a sentinel
func RedactZIP(s, sentinel string) string {
	return zipPattern.ReplaceAllString(s, sentinel)
}

// RedactSchoolInfo replaces internal server/database/schema references
// with `<label>: [INTERNAL]`, keeping the matched label
func RedactSchoolInfo(s string) string {
	return schoolInfoPattern.ReplaceAllString(s, "$1: [INTERNAL]")
}

// redactFreeText is the pass-through scrub applied by the engine to
// every string scalar that survives classification
func redactFreeText(s string) string {
	s = RedactSSN(s, ssnSentinel)
	s = RedactIPv4(s, ipv4Sentinel)
	return s
}

// ContainsSSN reports whether s contains an SSN literal
func ContainsSSN(s string) bool { return ssnPattern.MatchString(s) }

// ContainsIPv4 reports whether s contains an IPv4 literal
func ContainsIPv4(s string) bool { return ipv4Pattern.MatchString(s) }

// ContainsEmail reports whether s contains an email literal
func ContainsEmail(s string) bool { return emailPattern.MatchString(s) }

// ContainsPhone reports whether s contains a phone literal
func ContainsPhone(s string) bool { return phonePattern.MatchString(s) }
