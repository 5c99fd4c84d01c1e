package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"quickcicd/pkg/config"
)

// Collector records CLI runs when telemetry is enabled. A disabled collector
// never opens the database and every Record call is a no-op.
type Collector struct {
	cfg     config.TelemetryConfig
	db      *TelemetryDB
	session string
}

func NewCollector(cfg config.TelemetryConfig, dbPath string) (*Collector, error) {
	c := &Collector{cfg: cfg, session: uuid.New().String()}
	if !cfg.Enabled {
		return c, nil
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	db, err := NewTelemetryDB(dbPath)
	if err != nil {
		return nil, err
	}
	c.db = db

	if err := c.Cleanup(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply retention: %w", err)
	}
	return c, nil
}

func (c *Collector) Enabled() bool {
	return c.db != nil
}

// Run describes a finished invocation.
type Run struct {
	Command      string
	ProjectType  string
	FilesWritten int
	Started      time.Time
	ErrorType    string
	Failed       bool
}

// Record stores one event for r. Runs of the generator are stored as
// "generate" events and feed the success rate; everything else is a
// "command" event.
func (c *Collector) Record(r Run) error {
	if !c.Enabled() {
		return nil
	}

	eventType := EventCommand
	if r.Command == EventGenerate {
		eventType = EventGenerate
	}

	now := time.Now()
	var duration time.Duration
	if !r.Started.IsZero() {
		duration = now.Sub(r.Started)
	}

	return c.db.SaveEvent(Event{
		ID:           uuid.New().String(),
		Timestamp:    now,
		SessionID:    c.session,
		EventType:    eventType,
		Command:      r.Command,
		ProjectType:  r.ProjectType,
		FilesWritten: r.FilesWritten,
		Duration:     duration,
		Success:      !r.Failed,
		ErrorType:    r.ErrorType,
	})
}

// Cleanup removes old events based on retention policy
func (c *Collector) Cleanup() error {
	if !c.Enabled() || c.cfg.RetentionDays <= 0 {
		return nil
	}

	olderThan := time.Duration(c.cfg.RetentionDays) * 24 * time.Hour
	return c.db.DeleteOldEvents(olderThan)
}

func (c *Collector) Session() string {
	return c.session
}

func (c *Collector) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
