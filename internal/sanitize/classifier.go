package sanitize

import "strings"

// Action is the classifier's decision for a field
type Action int

const (
	ActionPass Action = iota
	ActionDrop
	ActionMask
)

// MaskKind selects which masker handles a field routed to ActionMask
type MaskKind string

const (
	MaskEmailKind     MaskKind = "email"
	MaskPhoneKind     MaskKind = "phone"
	MaskAddressKind   MaskKind = "address"
	MaskBirthDateKind MaskKind = "birthdate"
	MaskStudentIDKind MaskKind = "studentid"
)

// alwaysRemove holds lowercase substring tokens. A field is dropped if
// any token occurs as a substring of its lowercased name, at any depth.
var alwaysRemove = []string{
	"ssn",
	"social_security_number",
	"password",
	"password_hash",
	"pin",
	"pin_code",
	"security_question",
	"security_answer",
	"internal_id",
	"system_id",
	"database_id",
	"db_id",
	"server_ip",
	"host_ip",
	"mac_address",
	"gps_coordinates",
	"latitude",
	"longitude",
	"ip_address",
	"client_ip",
}

// maskable routes a scalar to a specific masker. Evaluated in order;
// first match wins. Substring matching is intentionally permissive so
// naming-convention variants (phoneNumber, phone_number, mobilePhone)
// are all caught.
var maskable = []struct {
	token string
	kind  MaskKind
}{
	{"email", MaskEmailKind},
	{"phone", MaskPhoneKind},
	{"address", MaskAddressKind},
	{"birth", MaskBirthDateKind},
	{"dob", MaskBirthDateKind},
	{"student_id", MaskStudentIDKind},
	{"studentid", MaskStudentIDKind},
}

// Classify decides drop / mask / pass for a field name under the given
// context. Rules are evaluated in order: drop list first, then maskers.
func Classify(fieldName string, ctx Context) (Action, MaskKind) {
	lower := strings.ToLower(fieldName)

	for _, token := range alwaysRemove {
		if strings.Contains(lower, token) {
			return ActionDrop, ""
		}
	}
	for token := range ctx.AdditionalFieldsToRemove {
		if token != "" && strings.Contains(lower, token) {
			return ActionDrop, ""
		}
	}

	for _, m := range maskable {
		if strings.Contains(lower, m.token) {
			return ActionMask, m.kind
		}
	}

	return ActionPass, ""
}
