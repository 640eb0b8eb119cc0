package sanitize

import (
	"strings"
	"testing"
)

func TestDerivePseudonym_Stable(t *testing.T) {
	first := DerivePseudonym("S1", "D1")
	second := DerivePseudonym("S1", "D1")
	if first != second {
		t.Errorf("pseudonym not stable: %s != %s", first, second)
	}
}

func TestDerivePseudonym_DeviceScoped(t *testing.T) {
	d1 := DerivePseudonym("S1", "D1")
	d2 := DerivePseudonym("S1", "D2")
	if d1 == d2 {
		t.Error("distinct devices must see distinct references")
	}
}

func TestDerivePseudonym_Shape(t *testing.T) {
	ref := DerivePseudonym("S1", "D1")
	if !strings.HasPrefix(ref, "REF-") {
		t.Errorf("reference %s should have REF- prefix", ref)
	}
	if len(ref) != len("REF-")+12 {
		t.Errorf("reference length = %d, want %d", len(ref), len("REF-")+12)
	}
	if strings.ContainsAny(ref[4:], "/+") {
		t.Errorf("reference %s contains unsubstituted base64 characters", ref)
	}
}

func TestDerivePseudonym_MissingStudentID(t *testing.T) {
	ref := DerivePseudonym("", "D1")
	if !strings.HasPrefix(ref, "ANON-") {
		t.Errorf("missing student ID should yield ANON reference, got %s", ref)
	}
	if len(ref) != len("ANON-")+8 {
		t.Errorf("anonymous reference length = %d, want %d", len(ref), len("ANON-")+8)
	}

	other := DerivePseudonym("", "D1")
	if ref == other {
		t.Error("anonymous references should be fresh per call")
	}
}

func TestDeriver_SaltChangesReference(t *testing.T) {
	defaultSalt := NewDeriver("")
	custom := NewDeriver("district-42-salt")

	if defaultSalt.Derive("S1", "D1") == custom.Derive("S1", "D1") {
		t.Error("different salts should produce different references")
	}
	if defaultSalt.Derive("S1", "D1") != DerivePseudonym("S1", "D1") {
		t.Error("empty salt should fall back to the default")
	}
}
