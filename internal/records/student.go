package records

import (
	"log"

	"github.com/savegress/eduguard/internal/sanitize"
	"github.com/savegress/eduguard/pkg/models"
)

// SanitizeStudent sanitizes a student record for one device. The
// output always carries the device-scoped pseudonymous reference;
// name, grade and masked contact details require capability grants.
// SSN, addresses, birth dates and medical fields are never emitted
// regardless of permissions.
func (s *Sanitizer) SanitizeStudent(rec *models.Record, device sanitize.Device) *models.Record {
	out := models.NewRecord()
	if rec == nil || device == nil {
		log.Printf("records: student sanitization missing record or device, returning empty record")
		return out
	}

	studentID := getString(rec, "studentId", "student_id")
	out.Set("reference_id", s.engine.Deriver().Derive(studentID, device.DeviceID()))

	if device.HasPermission(sanitize.CapStudentBasicInfo) {
		first := getString(rec, "firstName", "first_name")
		last := getString(rec, "lastName", "last_name")
		if name := formatStudentName(first, last); name != "" {
			out.Set("student_name", name)
		}
		if grade, ok := getValue(rec, "gradeLevel", "grade_level"); ok && grade != nil {
			out.Set("grade_level", grade)
		}
	} else {
		log.Printf("records: device %s lacks %s, withholding student basics", device.DeviceID(), sanitize.CapStudentBasicInfo)
	}

	if device.HasPermission(sanitize.CapStudentContactInfo) {
		if email := getString(rec, "parentEmail", "parent_email"); email != "" {
			out.Set("contact_email", sanitize.MaskEmail(email))
		}
		if phone := getString(rec, "parentPhone", "parent_phone"); phone != "" {
			out.Set("contact_phone", sanitize.MaskPhone(phone))
		}
	}

	sanitize.StampMetadata(out)
	return out
}
