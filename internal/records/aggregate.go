package records

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/savegress/eduguard/internal/sanitize"
	"github.com/savegress/eduguard/pkg/models"
)

// SanitizeAggregate sanitizes an aggregate report. Without the
// AGGREGATE_STATISTICS capability the output is empty. Only numeric
// scalars and period/range keys survive; integer counts below the
// suppression threshold become the "< 5" sentinel so small groups
// cannot be re-identified.
func (s *Sanitizer) SanitizeAggregate(rec *models.Record, device sanitize.Device) *models.Record {
	out := models.NewRecord()
	if rec == nil || device == nil {
		return out
	}
	if !device.HasPermission(sanitize.CapAggregateStatistics) {
		log.Printf("records: device %s lacks %s, aggregate withheld", device.DeviceID(), sanitize.CapAggregateStatistics)
		return out
	}

	rec.Range(func(key string, value interface{}) bool {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "period") || strings.Contains(lower, "range") {
			out.Set(key, value)
			return true
		}
		if i, ok := sanitize.AsInt(value); ok {
			if i < s.minGroupSize {
				out.Set(key, fmt.Sprintf("< %d", s.minGroupSize))
			} else {
				out.Set(key, i)
			}
			return true
		}
		if f, ok := sanitize.AsFloat(value); ok {
			out.Set(key, math.Round(f*100)/100)
			return true
		}
		// Non-numeric, non-period values never leave in aggregates
		return true
	})

	sanitize.StampMetadata(out)
	return out
}

// KAnonymityResult reports whether a dataset satisfies k-anonymity
// over its quasi-identifiers
type KAnonymityResult struct {
	K               int         `json:"k"`
	Satisfied       bool        `json:"satisfied"`
	TotalGroups     int         `json:"total_groups"`
	ViolatingGroups []GroupInfo `json:"violating_groups,omitempty"`
}

// GroupInfo describes an equivalence class that is too small
type GroupInfo struct {
	QuasiIdentifiers string `json:"quasi_identifiers"`
	Count            int    `json:"count"`
}

// CheckKAnonymity groups rows by their quasi-identifier values and
// flags groups smaller than k
func CheckKAnonymity(rows []map[string]interface{}, quasiIdentifiers []string, k int) *KAnonymityResult {
	groups := make(map[string]int)
	for _, row := range rows {
		var keyParts []string
		for _, qi := range quasiIdentifiers {
			if val, ok := row[qi]; ok {
				keyParts = append(keyParts, fmt.Sprintf("%v", val))
			}
		}
		groups[strings.Join(keyParts, "|")]++
	}

	result := &KAnonymityResult{
		K:           k,
		Satisfied:   true,
		TotalGroups: len(groups),
	}
	for key, count := range groups {
		if count < k {
			result.Satisfied = false
			result.ViolatingGroups = append(result.ViolatingGroups, GroupInfo{
				QuasiIdentifiers: key,
				Count:            count,
			})
		}
	}
	return result
}
