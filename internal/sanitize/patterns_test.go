package sanitize

import (
	"strings"
	"testing"
)

func TestRedactSSN(t *testing.T) {
	got := RedactSSN("SSN 111-22-3333 on file", "[SSN-REDACTED]")
	if got != "SSN [SSN-REDACTED] on file" {
		t.Errorf("RedactSSN = %q", got)
	}
}

func TestRedactIPv4(t *testing.T) {
	got := RedactIPv4("reached from 10.0.0.1 and 192.168.1.200", "[IP-REDACTED]")
	if strings.Contains(got, "10.0.0.1") || strings.Contains(got, "192.168.1.200") {
		t.Errorf("RedactIPv4 left an address: %q", got)
	}
	if strings.Count(got, "[IP-REDACTED]") != 2 {
		t.Errorf("expected two redactions, got %q", got)
	}
}

func TestRedactAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"street", "visit 123 Main Street today"},
		{"avenue", "located at 45 Oak Avenue"},
		{"abbreviated", "9 Elm St"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RedactAddress(tt.input, "[SCHOOL ADDRESS]")
			if !strings.Contains(got, "[SCHOOL ADDRESS]") {
				t.Errorf("RedactAddress(%q) = %q", tt.input, got)
			}
		})
	}
}

func TestRedactPhone(t *testing.T) {
	got := RedactPhone("Call (555) 123-4567 now", "[PHONE REDACTED]")
	if strings.Contains(got, "4567") {
		t.Errorf("RedactPhone left digits: %q", got)
	}
}

func TestRedactSchoolInfo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"server", "failure on server: db01 overnight", "failure on server: [INTERNAL] overnight"},
		{"database upper", "Database: sis_prod is degraded", "Database: [INTERNAL] is degraded"},
		{"schema", "schema:students migrated", "schema: [INTERNAL] migrated"},
		{"no match", "nothing internal here", "nothing internal here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactSchoolInfo(tt.input); got != tt.want {
				t.Errorf("RedactSchoolInfo(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestContainsHelpers(t *testing.T) {
	if !ContainsSSN("111-22-3333") {
		t.Error("ContainsSSN missed a literal")
	}
	if ContainsSSN("1112233334") {
		t.Error("ContainsSSN matched unformatted digits")
	}
	if !ContainsIPv4("10.0.0.1") {
		t.Error("ContainsIPv4 missed a literal")
	}
	if !ContainsEmail("a@b.co") {
		t.Error("ContainsEmail missed a literal")
	}
	if !ContainsPhone("555-123-4567") {
		t.Error("ContainsPhone missed a literal")
	}
}
