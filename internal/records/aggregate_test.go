package records

import (
	"testing"

	"github.com/savegress/eduguard/internal/devices"
	"github.com/savegress/eduguard/internal/sanitize"
	"github.com/savegress/eduguard/pkg/models"
)

func TestSanitizeAggregate(t *testing.T) {
	s := newTestSanitizer()
	dev := devices.StaticDevice("D1", "district", sanitize.CapAggregateStatistics)

	rec := models.RecordFromPairs(
		"totalAbsent", 3,
		"totalPresent", 127,
		"avgGpa", 3.4567,
		"periodStart", "2024-09-01",
		"schoolName", "Heronix Middle",
	)

	out := s.SanitizeAggregate(rec, dev)

	if v, _ := out.Get("totalAbsent"); v != "< 5" {
		t.Errorf("totalAbsent = %v, want \"< 5\"", v)
	}
	if v, _ := out.Get("totalPresent"); v != int64(127) {
		t.Errorf("totalPresent = %v (%T), want 127", v, v)
	}
	if v, _ := out.Get("avgGpa"); v != 3.46 {
		t.Errorf("avgGpa = %v, want 3.46", v)
	}
	if v, _ := out.Get("periodStart"); v != "2024-09-01" {
		t.Errorf("periodStart = %v, should pass through", v)
	}
	if _, ok := out.Get("schoolName"); ok {
		t.Error("non-numeric field should be suppressed")
	}
	if v, _ := out.Get("_sanitized"); v != true {
		t.Error("_sanitized tag missing")
	}
}

func TestSanitizeAggregate_Denied(t *testing.T) {
	s := newTestSanitizer()
	dev := devices.StaticDevice("D1", "kiosk", sanitize.CapStudentBasicInfo)

	out := s.SanitizeAggregate(models.RecordFromPairs("total", 10), dev)
	if out.Len() != 0 {
		t.Errorf("output should be empty without aggregate capability, got keys %v", out.Keys())
	}
}

func TestSanitizeAggregate_Threshold(t *testing.T) {
	s := NewSanitizer(sanitize.NewEngine(""), 10)
	dev := devices.StaticDevice("D1", "district", sanitize.CapAggregateStatistics)

	out := s.SanitizeAggregate(models.RecordFromPairs("count", 9, "other", 10), dev)

	if v, _ := out.Get("count"); v != "< 10" {
		t.Errorf("count = %v, want \"< 10\"", v)
	}
	if v, _ := out.Get("other"); v != int64(10) {
		t.Errorf("other = %v, threshold value itself should survive", v)
	}
}

func TestSanitizeAggregate_RangeKeys(t *testing.T) {
	s := newTestSanitizer()
	dev := devices.StaticDevice("D1", "district", sanitize.CapAggregateStatistics)

	rec := models.RecordFromPairs(
		"dateRange", "2024-09-01/2024-09-30",
		"reporting_period", "fall",
	)
	out := s.SanitizeAggregate(rec, dev)

	if v, _ := out.Get("dateRange"); v != "2024-09-01/2024-09-30" {
		t.Errorf("dateRange = %v", v)
	}
	if v, _ := out.Get("reporting_period"); v != "fall" {
		t.Errorf("reporting_period = %v", v)
	}
}

func TestCheckKAnonymity(t *testing.T) {
	rows := []map[string]interface{}{
		{"grade": 7, "zip": "02139"},
		{"grade": 7, "zip": "02139"},
		{"grade": 7, "zip": "02139"},
		{"grade": 8, "zip": "02140"},
	}

	result := CheckKAnonymity(rows, []string{"grade", "zip"}, 3)

	if result.Satisfied {
		t.Error("a singleton group should fail k=3")
	}
	if result.TotalGroups != 2 {
		t.Errorf("TotalGroups = %d, want 2", result.TotalGroups)
	}
	if len(result.ViolatingGroups) != 1 {
		t.Fatalf("ViolatingGroups = %+v, want one entry", result.ViolatingGroups)
	}
	if result.ViolatingGroups[0].Count != 1 {
		t.Errorf("violating group count = %d, want 1", result.ViolatingGroups[0].Count)
	}

	result = CheckKAnonymity(rows[:3], []string{"grade", "zip"}, 3)
	if !result.Satisfied {
		t.Errorf("uniform group of 3 should satisfy k=3: %+v", result)
	}
}
