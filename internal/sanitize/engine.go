package sanitize

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/savegress/eduguard/pkg/models"
)

// MetadataVersion is stamped on every sanitized root when metadata is
// enabled
const MetadataVersion = "1.0"

// Engine walks record trees applying the field classifier and value
// transformers. It is stateless and safe for concurrent use; policy
// tables and patterns are package-level and read-only.
type Engine struct {
	deriver *Deriver
}

// NewEngine creates an engine whose pseudonym derivations use the given
// salt (empty means the built-in default)
func NewEngine(salt string) *Engine {
	return &Engine{deriver: NewDeriver(salt)}
}

// Deriver exposes the engine's pseudonym deriver for domain sanitizers
func (e *Engine) Deriver() *Deriver {
	return e.deriver
}

// Stats counts what one sanitization pass did
type Stats struct {
	FieldsDropped int
	FieldsMasked  int
}

// Sanitize walks the record and returns a fresh sanitized tree. The
// input is never mutated. Sanitization is total: no input shape causes
// a panic to escape.
func (e *Engine) Sanitize(rec *models.Record, device Device, ctx Context) (out *models.Record, stats Stats) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sanitize: recovered from %v; emitting empty record", r)
			out = models.NewRecord()
			if ctx.IncludeMetadata {
				StampMetadata(out)
			}
		}
	}()

	out = e.sanitizeMapping(rec, ctx, &stats)
	if ctx.IncludeMetadata {
		StampMetadata(out)
	}
	return out, stats
}

// StampMetadata appends the sanitization tags at the end of a root
// mapping
func StampMetadata(rec *models.Record) {
	rec.Set("_sanitized", true)
	rec.Set("_sanitizedAt", time.Now().Format("2006-01-02T15:04:05"))
	rec.Set("_sanitizationVersion", MetadataVersion)
}

func (e *Engine) sanitizeMapping(rec *models.Record, ctx Context, stats *Stats) *models.Record {
	if rec == nil {
		return models.NewRecord()
	}

	out := models.NewRecord()
	rec.Range(func(key string, value interface{}) bool {
		action, kind := Classify(key, ctx)
		if action == ActionDrop {
			stats.FieldsDropped++
			return true
		}

		switch v := value.(type) {
		case *models.Record:
			out.Set(key, e.sanitizeMapping(v, ctx, stats))
		case []interface{}:
			out.Set(key, e.sanitizeSequence(key, v, action, kind, ctx, stats))
		case nil:
			// null values are dropped from output
		default:
			if sanitized, keep := e.sanitizeScalar(v, action, kind, stats); keep {
				out.Set(key, sanitized)
			}
		}
		return true
	})
	return out
}

func (e *Engine) sanitizeSequence(parentKey string, seq []interface{}, action Action, kind MaskKind, ctx Context, stats *Stats) []interface{} {
	out := make([]interface{}, 0, len(seq))
	for _, item := range seq {
		switch v := item.(type) {
		case *models.Record:
			out = append(out, e.sanitizeMapping(v, ctx, stats))
		case []interface{}:
			out = append(out, e.sanitizeSequence(parentKey, v, action, kind, ctx, stats))
		case nil:
			// dropped
		default:
			if sanitized, keep := e.sanitizeScalar(v, action, kind, stats); keep {
				out = append(out, sanitized)
			}
		}
	}
	return out
}

func (e *Engine) sanitizeScalar(value interface{}, action Action, kind MaskKind, stats *Stats) (interface{}, bool) {
	if action == ActionMask {
		stats.FieldsMasked++
		return applyMask(kind, value), true
	}
	if s, ok := value.(string); ok {
		return redactFreeText(s), true
	}
	// Unknown scalar types pass through unchanged
	return value, true
}

// LeakReport is the result of a post-sanitization scan
type LeakReport struct {
	Clean      bool     `json:"clean"`
	Violations []string `json:"violations"`
	Warnings   []string `json:"warnings"`
}

// Validate scans a sanitized tree for residual PII. SSN and IPv4
// literals are violations; phone and email literals and suspicious
// field names are warnings.
func (e *Engine) Validate(rec *models.Record) *LeakReport {
	report := &LeakReport{Clean: true, Violations: []string{}, Warnings: []string{}}
	e.scan(rec, "", report)
	return report
}

func (e *Engine) scan(value interface{}, path string, report *LeakReport) {
	switch v := value.(type) {
	case *models.Record:
		v.Range(func(key string, val interface{}) bool {
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}
			if action, _ := Classify(key, Context{}); action == ActionDrop {
				report.Clean = false
				report.Violations = append(report.Violations, fmt.Sprintf("removed-category field present: %s", childPath))
			}
			e.scan(val, childPath, report)
			return true
		})
	case []interface{}:
		for i, item := range v {
			e.scan(item, fmt.Sprintf("%s[%d]", path, i), report)
		}
	case string:
		if ContainsSSN(v) {
			report.Clean = false
			report.Violations = append(report.Violations, fmt.Sprintf("SSN pattern at %s", path))
		}
		if ContainsIPv4(v) {
			report.Clean = false
			report.Violations = append(report.Violations, fmt.Sprintf("IPv4 pattern at %s", path))
		}
		if ContainsEmail(v) {
			report.Warnings = append(report.Warnings, fmt.Sprintf("email pattern at %s", path))
		}
		if ContainsPhone(v) {
			report.Warnings = append(report.Warnings, fmt.Sprintf("phone pattern at %s", path))
		}
	}
}

// Numeric helpers shared by the aggregate sanitizer. JSON decoding
// keeps numbers as json.Number; programmatic callers may hand the
// engine native ints and floats.

// AsInt reports whether v is an integer-valued scalar and returns it
func AsInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}
	return 0, false
}

// AsFloat reports whether v is a numeric scalar and returns it as a
// float
func AsFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}
