package audit

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/savegress/eduguard/pkg/models"
)

// EventStore is a SQLite-backed embedded store for sanitization events.
// It exists so the audit trail survives restarts; the in-memory index
// in Logger stays the hot path.
type EventStore struct {
	db     *sql.DB
	dbPath string
}

// NewEventStore opens (or creates) the embedded store under dataPath
func NewEventStore(dataPath string) (*EventStore, error) {
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "audit.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &EventStore{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *EventStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sanitization_events (
		id TEXT PRIMARY KEY,
		device_id TEXT NOT NULL,
		device_type TEXT,
		data_type TEXT NOT NULL,
		purpose TEXT NOT NULL,
		fields_dropped INTEGER NOT NULL DEFAULT 0,
		fields_masked INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL,
		detail TEXT,
		recorded INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_device ON sanitization_events(device_id, recorded);
	CREATE INDEX IF NOT EXISTS idx_events_recorded ON sanitization_events(recorded);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Insert persists one event. Failures are logged, not propagated;
// sanitization must never fail because the audit disk is unhappy.
func (s *EventStore) Insert(event *models.SanitizationEvent) {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO sanitization_events
		(id, device_id, device_type, data_type, purpose, fields_dropped, fields_masked, outcome, detail, recorded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.DeviceID, event.DeviceType, event.DataType, event.Purpose,
		event.FieldsDropped, event.FieldsMasked, event.Outcome, event.Detail,
		event.Recorded.Unix(),
	)
	if err != nil {
		log.Printf("audit: failed to persist event %s: %v", event.ID, err)
	}
}

// Query loads events recorded at or after since, newest first
func (s *EventStore) Query(since time.Time, limit int) ([]*models.SanitizationEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT id, device_id, device_type, data_type, purpose, fields_dropped, fields_masked, outcome, detail, recorded
		FROM sanitization_events
		WHERE recorded >= ?
		ORDER BY recorded DESC
		LIMIT ?`,
		since.Unix(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.SanitizationEvent
	for rows.Next() {
		var e models.SanitizationEvent
		var recorded int64
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.DeviceType, &e.DataType, &e.Purpose,
			&e.FieldsDropped, &e.FieldsMasked, &e.Outcome, &e.Detail, &recorded); err != nil {
			return nil, err
		}
		e.Recorded = time.Unix(recorded, 0)
		events = append(events, &e)
	}
	return events, rows.Err()
}

// Cleanup removes events older than the retention window
func (s *EventStore) Cleanup(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays).Unix()
	_, err := s.db.Exec(`DELETE FROM sanitization_events WHERE recorded < ?`, cutoff)
	return err
}

// Close closes the store
func (s *EventStore) Close() error {
	return s.db.Close()
}
