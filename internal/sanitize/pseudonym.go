package sanitize

import (
	"crypto/sha256"
	"encoding/base64"
	"log"
	"strings"

	"github.com/google/uuid"
)

// DefaultSalt is the process-wide pseudonym salt. Deployments may
// override it through configuration; it is never rotated per call.
const DefaultSalt = "heronix-salt"

// Deriver produces deterministic, device-scoped student reference IDs.
// The same (student, device) pair always maps to the same reference;
// distinct devices see distinct references for the same student.
type Deriver struct {
	salt string
}

// NewDeriver creates a deriver with the given salt, falling back to
// DefaultSalt when empty
func NewDeriver(salt string) *Deriver {
	if salt == "" {
		salt = DefaultSalt
	}
	return &Deriver{salt: salt}
}

// Derive returns the pseudonymous reference for a student as seen by
// one device. A missing student ID yields a non-deterministic
// ANON-prefixed reference.
func (d *Deriver) Derive(studentID, deviceID string) string {
	if studentID == "" {
		log.Printf("pseudonym: missing student ID, issuing anonymous reference (device=%s)", deviceID)
		return anonReference()
	}

	sum := sha256.Sum256([]byte(studentID + ":" + deviceID + ":" + d.salt))
	encoded := base64.StdEncoding.EncodeToString(sum[:])
	if len(encoded) < 12 {
		// SHA-256 always base64-encodes to 44 chars; guard anyway
		log.Printf("pseudonym: derivation degraded for device=%s", deviceID)
		return anonReference()
	}

	ref := encoded[:12]
	ref = strings.ReplaceAll(ref, "/", "X")
	ref = strings.ReplaceAll(ref, "+", "Y")
	return "REF-" + ref
}

func anonReference() string {
	return "ANON-" + uuid.New().String()[:8]
}

// DerivePseudonym derives a reference with the default salt. Exposed
// for tests and callers that never override the salt.
func DerivePseudonym(studentID, deviceID string) string {
	return NewDeriver("").Derive(studentID, deviceID)
}
