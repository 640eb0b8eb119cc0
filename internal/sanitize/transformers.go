package sanitize

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Masker sentinels
const (
	emailRedacted   = "[EMAIL REDACTED]"
	phoneRedacted   = "[PHONE REDACTED]"
	dobRedacted     = "[DOB REDACTED]"
	addressRedacted = "[ADDRESS REDACTED]"
)

// MaskEmail reveals a bounded prefix of the local part and the last
// domain label: jane.doe@school.example.org -> ja***@***.org
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return emailRedacted
	}
	local := email[:at]
	domain := email[at+1:]

	var maskedLocal string
	if len(local) >= 3 {
		maskedLocal = local[:2] + "***"
	} else {
		maskedLocal = "***"
	}

	maskedDomain := "***"
	if dot := strings.LastIndex(domain, "."); dot >= 0 {
		maskedDomain = "***" + domain[dot:]
	}

	return maskedLocal + "@" + maskedDomain
}

// MaskPhone keeps only the last four digits: (555) 123-4567 -> ***-***-4567
func MaskPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 10 {
		return phoneRedacted
	}
	return "***-***-" + d[len(d)-4:]
}

// MaskBirthDate keeps only the year: 2011-04-09 -> 2011-**-**
func MaskBirthDate(date string) string {
	if len(date) < 4 {
		return dobRedacted
	}
	if _, err := strconv.Atoi(date[:4]); err != nil {
		return dobRedacted
	}
	return date[:4] + "-**-**"
}

// MaskStudentID replaces the raw identifier with a stable in-process
// hash tag: S100 -> [ID:1234567890]
func MaskStudentID(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return fmt.Sprintf("[ID:%d]", h.Sum32())
}

// MaskAddress replaces the whole value with a constant sentinel
func MaskAddress(string) string {
	return addressRedacted
}

// applyMask dispatches a scalar to the masker chosen by the classifier.
// Non-string scalars are formatted first; over-redaction wins on
// ambiguity.
func applyMask(kind MaskKind, value interface{}) string {
	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}
	switch kind {
	case MaskEmailKind:
		return MaskEmail(s)
	case MaskPhoneKind:
		return MaskPhone(s)
	case MaskAddressKind:
		return MaskAddress(s)
	case MaskBirthDateKind:
		return MaskBirthDate(s)
	case MaskStudentIDKind:
		return MaskStudentID(s)
	default:
		return addressRedacted
	}
}
