package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/savegress/eduguard/internal/config"
	"github.com/savegress/eduguard/pkg/models"
)

// Logger records sanitization events. Events flow through a buffered
// channel into the in-memory index and, when configured, the embedded
// store.
type Logger struct {
	config  *config.AuditConfig
	store   *EventStore // nil when persistence is disabled
	events  map[string]*models.SanitizationEvent
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	eventCh chan *models.SanitizationEvent
}

// NewLogger creates an audit logger. store may be nil.
func NewLogger(cfg *config.AuditConfig, store *EventStore) *Logger {
	return &Logger{
		config:  cfg,
		store:   store,
		events:  make(map[string]*models.SanitizationEvent),
		stopCh:  make(chan struct{}),
		eventCh: make(chan *models.SanitizationEvent, 1000),
	}
}

// Start starts the event worker
func (l *Logger) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil
	}
	l.running = true
	l.mu.Unlock()

	go l.processEvents(ctx)
	return nil
}

// Stop stops the event worker
func (l *Logger) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		close(l.stopCh)
		l.running = false
	}
}

func (l *Logger) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stopCh:
			return
		case event := <-l.eventCh:
			l.mu.Lock()
			l.events[event.ID] = event
			l.mu.Unlock()
			if l.store != nil {
				l.store.Insert(event)
			}
		}
	}
}

// SanitizationLogRequest carries what a sanitization pass did
type SanitizationLogRequest struct {
	DeviceID      string
	DeviceType    string
	DataType      string
	Purpose       string
	FieldsDropped int
	FieldsMasked  int
	Outcome       string
	Detail        string
}

// LogSanitization records one pass through a sanitization entry point
func (l *Logger) LogSanitization(req *SanitizationLogRequest) *models.SanitizationEvent {
	if l.config != nil && !l.config.Enabled {
		return nil
	}

	event := &models.SanitizationEvent{
		ID:            uuid.New().String(),
		DeviceID:      req.DeviceID,
		DeviceType:    req.DeviceType,
		DataType:      req.DataType,
		Purpose:       req.Purpose,
		FieldsDropped: req.FieldsDropped,
		FieldsMasked:  req.FieldsMasked,
		Outcome:       req.Outcome,
		Detail:        req.Detail,
		Recorded:      time.Now(),
	}

	select {
	case l.eventCh <- event:
	default:
		// Channel full; index synchronously rather than block sanitization
		l.mu.Lock()
		l.events[event.ID] = event
		l.mu.Unlock()
	}
	return event
}

// GetEvent retrieves an event by ID
func (l *Logger) GetEvent(id string) (*models.SanitizationEvent, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	event, ok := l.events[id]
	return event, ok
}

// EventFilter defines filters for event queries
type EventFilter struct {
	DeviceID string
	DataType string
	Outcome  string
	Since    *time.Time
	Limit    int
}

// GetEvents retrieves events matching the filter
func (l *Logger) GetEvents(filter EventFilter) []*models.SanitizationEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var results []*models.SanitizationEvent
	for _, event := range l.events {
		if !matchesFilter(event, filter) {
			continue
		}
		results = append(results, event)
		if filter.Limit > 0 && len(results) >= filter.Limit {
			break
		}
	}
	return results
}

func matchesFilter(event *models.SanitizationEvent, filter EventFilter) bool {
	if filter.DeviceID != "" && event.DeviceID != filter.DeviceID {
		return false
	}
	if filter.DataType != "" && event.DataType != filter.DataType {
		return false
	}
	if filter.Outcome != "" && event.Outcome != filter.Outcome {
		return false
	}
	if filter.Since != nil && event.Recorded.Before(*filter.Since) {
		return false
	}
	return true
}

// Stats summarizes recorded events
type Stats struct {
	TotalEvents  int            `json:"total_events"`
	DeniedEvents int            `json:"denied_events"`
	ByDataType   map[string]int `json:"by_data_type"`
	ByPurpose    map[string]int `json:"by_purpose"`
	ByOutcome    map[string]int `json:"by_outcome"`
}

// GetStats returns audit statistics
func (l *Logger) GetStats() *Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := &Stats{
		ByDataType: make(map[string]int),
		ByPurpose:  make(map[string]int),
		ByOutcome:  make(map[string]int),
	}
	for _, event := range l.events {
		stats.TotalEvents++
		stats.ByDataType[event.DataType]++
		stats.ByPurpose[event.Purpose]++
		stats.ByOutcome[event.Outcome]++
		if event.Outcome == models.OutcomeDenied {
			stats.DeniedEvents++
		}
	}
	return stats
}
