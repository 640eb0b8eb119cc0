package records

import (
	"strings"

	"github.com/savegress/eduguard/internal/sanitize"
	"github.com/savegress/eduguard/pkg/models"
)

// Sanitizer provides the record-type entry points. Every outbound
// payload category (student, attendance, notification, aggregate) has
// one entry point that selects policy and guards on device permissions.
type Sanitizer struct {
	engine       *sanitize.Engine
	minGroupSize int64
}

// NewSanitizer creates a sanitizer around an engine. minGroupSize is
// the small-count suppression threshold for aggregates; values below 1
// fall back to 5.
func NewSanitizer(engine *sanitize.Engine, minGroupSize int64) *Sanitizer {
	if minGroupSize < 1 {
		minGroupSize = 5
	}
	return &Sanitizer{engine: engine, minGroupSize: minGroupSize}
}

// Engine exposes the underlying engine
func (s *Sanitizer) Engine() *sanitize.Engine {
	return s.engine
}

// SanitizeRecord runs the generic engine walk under an explicit
// context. This is the schema-agnostic entry point for payloads that
// have no dedicated domain sanitizer (backups, compliance exports).
func (s *Sanitizer) SanitizeRecord(rec *models.Record, device sanitize.Device, ctx sanitize.Context) (*models.Record, sanitize.Stats) {
	return s.engine.Sanitize(rec, device, ctx)
}

// getString looks a string value up under any of the given keys,
// tolerating both camelCase and snake_case record shapes
func getString(rec *models.Record, keys ...string) string {
	for _, key := range keys {
		if v, ok := rec.Get(key); ok {
			if str, ok := v.(string); ok {
				return str
			}
		}
	}
	return ""
}

// getValue looks a value up under any of the given keys
func getValue(rec *models.Record, keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if v, ok := rec.Get(key); ok {
			return v, true
		}
	}
	return nil, false
}

// formatStudentName renders "<first initial>. <last name>", omitting
// empty parts
func formatStudentName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	switch {
	case first == "" && last == "":
		return ""
	case first == "":
		return last
	case last == "":
		return first[:1] + "."
	default:
		return first[:1] + ". " + last
	}
}
