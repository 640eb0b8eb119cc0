package devices

import (
	"testing"

	"github.com/savegress/eduguard/internal/sanitize"
	"github.com/savegress/eduguard/pkg/models"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	d := &models.RegisteredDevice{
		DeviceType:   "parent_app",
		Name:         "Kim family phone",
		Capabilities: []string{string(sanitize.CapStudentBasicInfo)},
	}
	if err := r.Register(d); err != nil {
		t.Fatal(err)
	}
	if d.DeviceID == "" {
		t.Error("registration should assign an ID")
	}
	if d.RegisteredAt.IsZero() {
		t.Error("registration should stamp RegisteredAt")
	}

	got, ok := r.Get(d.DeviceID)
	if !ok || got.Name != "Kim family phone" {
		t.Errorf("Get = %+v, %v", got, ok)
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); err == nil {
		t.Error("nil device should be rejected")
	}
	if err := r.Register(&models.RegisteredDevice{}); err == nil {
		t.Error("missing device type should be rejected")
	}
}

func TestRegistry_View(t *testing.T) {
	r := NewRegistry()
	d := &models.RegisteredDevice{
		DeviceID:     "D1",
		DeviceType:   "district_sync",
		Capabilities: []string{string(sanitize.CapStudentBasicInfo), string(sanitize.CapAggregateStatistics)},
	}
	if err := r.Register(d); err != nil {
		t.Fatal(err)
	}

	view, ok := r.View("D1")
	if !ok {
		t.Fatal("View should find a registered device")
	}
	if view.DeviceID() != "D1" || view.DeviceType() != "district_sync" {
		t.Errorf("view identity = %s/%s", view.DeviceID(), view.DeviceType())
	}
	if !view.HasPermission(sanitize.CapStudentBasicInfo) {
		t.Error("granted capability missing from view")
	}
	if view.HasPermission(sanitize.CapStudentGrades) {
		t.Error("ungranted capability present in view")
	}

	if _, ok := r.View("unknown"); ok {
		t.Error("unknown device should not resolve")
	}
}

func TestRegistry_Revoke(t *testing.T) {
	r := NewRegistry()
	d := &models.RegisteredDevice{
		DeviceID:     "D1",
		DeviceType:   "parent_app",
		Capabilities: []string{string(sanitize.CapStudentBasicInfo)},
	}
	if err := r.Register(d); err != nil {
		t.Fatal(err)
	}

	if !r.Revoke("D1") {
		t.Fatal("Revoke should succeed for a known device")
	}
	if r.Revoke("unknown") {
		t.Error("Revoke should fail for an unknown device")
	}

	view, ok := r.View("D1")
	if !ok {
		t.Fatal("revoked devices keep their registration")
	}
	if view.HasPermission(sanitize.CapStudentBasicInfo) {
		t.Error("revoked device must lose all capabilities")
	}
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"D1", "D2", "D3"} {
		if err := r.Register(&models.RegisteredDevice{DeviceID: id, DeviceType: "app"}); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(r.List()); got != 3 {
		t.Errorf("List length = %d, want 3", got)
	}
}

func TestStaticDevice(t *testing.T) {
	dev := StaticDevice("embed", "library", sanitize.CapStudentAttendance)
	if dev.DeviceID() != "embed" || dev.DeviceType() != "library" {
		t.Errorf("identity = %s/%s", dev.DeviceID(), dev.DeviceType())
	}
	if !dev.HasPermission(sanitize.CapStudentAttendance) {
		t.Error("granted capability missing")
	}
	if dev.HasPermission(sanitize.CapStudentGrades) {
		t.Error("ungranted capability present")
	}
}
