package records

import (
	"github.com/savegress/eduguard/internal/sanitize"
	"github.com/savegress/eduguard/pkg/models"
)

// SanitizeNotification scrubs a parent notification before delivery.
// The recipient email stays verbatim (required for delivery); subject
// and body go through the pattern redactors and the school-info
// redactor. Attachments are dropped wholesale.
func (s *Sanitizer) SanitizeNotification(n *models.Notification, device sanitize.Device) *models.Notification {
	if n == nil {
		return &models.Notification{Attachments: []map[string]interface{}{}}
	}

	out := *n
	out.Subject = sanitizeSubject(n.Subject)
	out.Body = sanitizeBody(n.Body)
	out.Attachments = []map[string]interface{}{}

	if n.TemplateVariables != nil {
		vars := make(map[string]string, len(n.TemplateVariables))
		for k, v := range n.TemplateVariables {
			vars[k] = sanitizeBody(v)
		}
		out.TemplateVariables = vars
	}

	return &out
}

func sanitizeSubject(subject string) string {
	subject = sanitize.RedactSchoolInfo(subject)
	subject = sanitize.RedactSSN(subject, "[REDACTED]")
	subject = sanitize.RedactAddress(subject, "[SCHOOL]")
	return subject
}

// sanitizeBody scrubs free-form notification text. Phone redaction is
// applied here even though carriers accept it, so that forwarded
// bodies never leak a contact number.
func sanitizeBody(body string) string {
	body = sanitize.RedactSchoolInfo(body)
	body = sanitize.RedactSSN(body, "[SSN-REDACTED]")
	body = sanitize.RedactPhone(body, "[PHONE REDACTED]")
	body = sanitize.RedactAddress(body, "[SCHOOL ADDRESS]")
	body = sanitize.RedactIPv4(body, "[INTERNAL]")
	return body
}
