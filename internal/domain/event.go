package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// EnrichedFix is the sink-topic payload for one augmented fix. Window
// values are pointers so missing samples serialize as JSON null (NaN is
// not representable in JSON).
type EnrichedFix struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	Date        string     `json:"date"` // YYYYMMDD
	Status      string     `json:"status,omitempty"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Values      []*float64 `json:"values"` // offset order, day -15 first
	ProcessedAt time.Time  `json:"processed_at"`
}

// OutputEvent is a serialized record destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// BuildEnrichedFix assembles the sink payload for one sampled fix.
func BuildEnrichedFix(spec SourceSpec, fix Fix, samples []WindowSample) EnrichedFix {
	values := make([]*float64, len(samples))
	for i, s := range samples {
		if !math.IsNaN(s.Value) {
			v := s.Value
			values[i] = &v
		}
	}
	date := fix.Date.Format(dateLayout)
	return EnrichedFix{
		ID:          generateID(spec.Suffix, date, fix.Lat, fix.Lon),
		Source:      spec.Suffix,
		Date:        date,
		Status:      fix.Status,
		Lat:         fix.Lat,
		Lon:         fix.Lon,
		Values:      values,
		ProcessedAt: clock.Now().UTC(),
	}
}

// SerializeEnrichedFix marshals an enriched fix for the sink topic.
func SerializeEnrichedFix(ef EnrichedFix) (OutputEvent, error) {
	data, err := json.Marshal(ef)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize enriched fix: %w", err)
	}
	return OutputEvent{
		Key:   []byte(ef.ID),
		Value: data,
		Headers: map[string]string{
			"source":       ef.Source,
			"processed_at": ef.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// generateID produces a deterministic ID from the fix's key fields.
// Replaying an extraction publishes the same keys, so downstream consumers
// can upsert idempotently.
func generateID(source, date string, lat, lon float64) string {
	input := fmt.Sprintf("%s|%s|%.4f|%.4f", source, date, lat, lon)
	hash := sha256.Sum256([]byte(input))
	return strings.ToLower(source) + "-" + hex.EncodeToString(hash[:8])
}
