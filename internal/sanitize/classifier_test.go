package sanitize

import "testing"

func TestClassify_DropTokens(t *testing.T) {
	ctx := NewContext(DataStudentRecord, PurposeDistrictSync)

	dropped := []string{
		"ssn",
		"studentSSN",
		"social_security_number",
		"password_hash",
		"internal_id",
		"legacyInternal_id",
		"server_ip",
		"gps_coordinates",
		"latitude",
		"client_ip",
	}
	for _, name := range dropped {
		if action, _ := Classify(name, ctx); action != ActionDrop {
			t.Errorf("Classify(%q) = %v, want drop", name, action)
		}
	}
}

func TestClassify_MaskKinds(t *testing.T) {
	ctx := NewContext(DataStudentRecord, PurposeDistrictSync)

	tests := []struct {
		field string
		kind  MaskKind
	}{
		{"email", MaskEmailKind},
		{"parentEmail", MaskEmailKind},
		{"contact_email", MaskEmailKind},
		{"phoneNumber", MaskPhoneKind},
		{"mobilePhone", MaskPhoneKind},
		{"homeAddress", MaskAddressKind},
		{"birthDate", MaskBirthDateKind},
		{"dob", MaskBirthDateKind},
		{"student_id", MaskStudentIDKind},
		{"studentId", MaskStudentIDKind},
		{"studentID", MaskStudentIDKind},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			action, kind := Classify(tt.field, ctx)
			if action != ActionMask {
				t.Fatalf("Classify(%q) = %v, want mask", tt.field, action)
			}
			if kind != tt.kind {
				t.Errorf("Classify(%q) kind = %v, want %v", tt.field, kind, tt.kind)
			}
		})
	}
}

func TestClassify_DropWinsOverMask(t *testing.T) {
	// ssn token matches before any masker is consulted
	ctx := NewContext(DataStudentRecord, PurposeDistrictSync)
	if action, _ := Classify("ssnEmail", ctx); action != ActionDrop {
		t.Error("drop list should win over maskable tokens")
	}
}

func TestClassify_Pass(t *testing.T) {
	ctx := NewContext(DataStudentRecord, PurposeDistrictSync)
	for _, name := range []string{"gradeLevel", "status", "notes", "schoolName"} {
		if action, _ := Classify(name, ctx); action != ActionPass {
			t.Errorf("Classify(%q) should pass", name)
		}
	}
}

func TestClassify_AdditionalRemovals(t *testing.T) {
	ctx := NewContext(DataStudentRecord, PurposeDistrictSync).WithExtraRemovals("counselor")

	if action, _ := Classify("counselorNotes", ctx); action != ActionDrop {
		t.Error("additional removal token should drop the field")
	}
	if action, _ := Classify("notes", ctx); action != ActionPass {
		t.Error("unrelated field should still pass")
	}
}
