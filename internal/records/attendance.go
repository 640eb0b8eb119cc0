package records

import (
	"log"
	"regexp"

	"github.com/savegress/eduguard/internal/sanitize"
	"github.com/savegress/eduguard/pkg/models"
)

var isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// SanitizeAttendance sanitizes an attendance record. Without the
// STUDENT_ATTENDANCE capability the output is empty. Times, locations,
// class periods and teacher names are never emitted.
func (s *Sanitizer) SanitizeAttendance(rec *models.Record, device sanitize.Device) *models.Record {
	out := models.NewRecord()
	if rec == nil || device == nil {
		return out
	}
	if !device.HasPermission(sanitize.CapStudentAttendance) {
		log.Printf("records: device %s lacks %s, attendance withheld", device.DeviceID(), sanitize.CapStudentAttendance)
		return out
	}

	studentID := getString(rec, "studentId", "student_id")
	out.Set("student_ref", s.engine.Deriver().Derive(studentID, device.DeviceID()))

	if date := getString(rec, "date", "attendanceDate", "attendance_date"); date != "" {
		out.Set("date", dateOnly(date))
	}
	if status := getString(rec, "status"); status != "" {
		out.Set("status", status)
	}

	sanitize.StampMetadata(out)
	return out
}

// dateOnly strips the time component from an ISO-8601 date-time
func dateOnly(date string) string {
	if isoDatePrefix.MatchString(date) && len(date) > 10 {
		return date[:10]
	}
	return date
}
