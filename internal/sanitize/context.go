package sanitize

// DataType classifies the record being sanitized
type DataType string

const (
	DataStudentRecord    DataType = "STUDENT_RECORD"
	DataAttendanceRecord DataType = "ATTENDANCE_RECORD"
	DataGradeRecord      DataType = "GRADE_RECORD"
	DataNotification     DataType = "NOTIFICATION"
	DataAggregateReport  DataType = "AGGREGATE_REPORT"
	DataScheduleData     DataType = "SCHEDULE_DATA"
	DataComplianceReport DataType = "COMPLIANCE_REPORT"
)

// Purpose classifies why the record leaves the trust boundary
type Purpose string

const (
	PurposeParentNotification Purpose = "PARENT_NOTIFICATION"
	PurposeDistrictSync       Purpose = "DISTRICT_SYNC"
	PurposeStateReporting     Purpose = "STATE_REPORTING"
	PurposeBackup             Purpose = "BACKUP"
	PurposeAnalytics          Purpose = "ANALYTICS"
	PurposeAudit              Purpose = "AUDIT"
)

// Capability is a named permission granted to a device and checked
// before a field category is emitted
type Capability string

const (
	CapStudentBasicInfo    Capability = "STUDENT_BASIC_INFO"
	CapStudentContactInfo  Capability = "STUDENT_CONTACT_INFO"
	CapStudentAttendance   Capability = "STUDENT_ATTENDANCE"
	CapStudentGrades       Capability = "STUDENT_GRADES"
	CapAggregateStatistics Capability = "AGGREGATE_STATISTICS"
	CapScheduleAccess      Capability = "SCHEDULE_ACCESS"
)

// Device is the narrow capability view of a registered device. No
// transformation is reached without an explicit capability grant.
type Device interface {
	DeviceID() string
	DeviceType() string
	HasPermission(cap Capability) bool
}

// Context is the immutable envelope selecting sanitization policy for
// one call
type Context struct {
	DataType                 DataType
	Purpose                  Purpose
	AdditionalFieldsToRemove map[string]bool // lowercase tokens extending the drop list
	StrictMode               bool
	IncludeMetadata          bool
}

// NewContext returns a context with strict mode and metadata on
func NewContext(dataType DataType, purpose Purpose) Context {
	return Context{
		DataType:        dataType,
		Purpose:         purpose,
		StrictMode:      true,
		IncludeMetadata: true,
	}
}

// WithExtraRemovals returns a copy extending the drop list with the
// given lowercase tokens
func (c Context) WithExtraRemovals(tokens ...string) Context {
	extra := make(map[string]bool, len(c.AdditionalFieldsToRemove)+len(tokens))
	for t := range c.AdditionalFieldsToRemove {
		extra[t] = true
	}
	for _, t := range tokens {
		extra[t] = true
	}
	c.AdditionalFieldsToRemove = extra
	return c
}

// ForParentNotification is the policy envelope for parent-facing
// notifications
func ForParentNotification() Context {
	return NewContext(DataNotification, PurposeParentNotification)
}

// ForDistrictSync is the policy envelope for district synchronization
func ForDistrictSync(dataType DataType) Context {
	return NewContext(dataType, PurposeDistrictSync)
}

// ForStateReporting is the policy envelope for state reporting; state
// reports carry aggregates only
func ForStateReporting() Context {
	return NewContext(DataAggregateReport, PurposeStateReporting)
}
