package telemetry

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// sqlite3 stores time.Time bound parameters in this layout; aggregates such
// as MIN(timestamp) come back as plain strings.
const sqliteTimeLayout = "2006-01-02 15:04:05.999999999-07:00"

// TelemetryDB handles database operations
type TelemetryDB struct {
	db *sql.DB
}

// NewTelemetryDB creates/opens telemetry database
func NewTelemetryDB(path string) (*TelemetryDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	tdb := &TelemetryDB{db: db}
	if err := tdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return tdb, nil
}

func (t *TelemetryDB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		session_id TEXT,
		event_type TEXT NOT NULL,
		command TEXT,
		project_type TEXT,
		files_written INTEGER DEFAULT 0,
		duration_ms INTEGER,
		success BOOLEAN,
		error_type TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);
	CREATE INDEX IF NOT EXISTS idx_events_time ON events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_events_project_type ON events(project_type);
	`

	_, err := t.db.Exec(schema)
	return err
}

// SaveEvent saves a telemetry event
func (t *TelemetryDB) SaveEvent(e Event) error {
	query := `
	INSERT OR REPLACE INTO events (
		id, timestamp, session_id, event_type, command, project_type,
		files_written, duration_ms, success, error_type
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := t.db.Exec(query,
		e.ID, e.Timestamp.UTC(), e.SessionID, e.EventType, e.Command,
		e.ProjectType, e.FilesWritten, e.Duration.Milliseconds(),
		e.Success, e.ErrorType,
	)
	return err
}

// QueryEvents returns events recorded at or after since, oldest first.
func (t *TelemetryDB) QueryEvents(since time.Time) ([]Event, error) {
	rows, err := t.db.Query(`
		SELECT id, timestamp, session_id, event_type, command, project_type,
			files_written, duration_ms, success, error_type
		FROM events WHERE timestamp >= ? ORDER BY timestamp
	`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var durationMs sql.NullInt64
		var session, command, projectType, errorType sql.NullString

		err := rows.Scan(
			&e.ID, &e.Timestamp, &session, &e.EventType, &command,
			&projectType, &e.FilesWritten, &durationMs, &e.Success, &errorType,
		)
		if err != nil {
			return nil, err
		}

		e.SessionID = session.String
		e.Command = command.String
		e.ProjectType = projectType.String
		e.ErrorType = errorType.String
		if durationMs.Valid {
			e.Duration = time.Duration(durationMs.Int64) * time.Millisecond
		}

		events = append(events, e)
	}

	return events, rows.Err()
}

// GetStats returns usage statistics for the last days days.
func (t *TelemetryDB) GetStats(days int) (Stats, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	stats := Stats{}

	err := t.db.QueryRow(`
		SELECT COUNT(*) FROM events WHERE timestamp >= ?
	`, since).Scan(&stats.TotalEvents)
	if err != nil {
		return stats, err
	}

	err = t.db.QueryRow(`
		SELECT COUNT(*) FROM events WHERE event_type = 'generate' AND timestamp >= ?
	`, since).Scan(&stats.TotalRuns)
	if err != nil {
		return stats, err
	}

	successful := 0
	err = t.db.QueryRow(`
		SELECT COUNT(*) FROM events WHERE event_type = 'generate' AND success = 1 AND timestamp >= ?
	`, since).Scan(&successful)
	if err != nil {
		return stats, err
	}
	if stats.TotalRuns > 0 {
		stats.SuccessRate = float64(successful) / float64(stats.TotalRuns) * 100
	}

	var avgDuration sql.NullFloat64
	err = t.db.QueryRow(`
		SELECT AVG(duration_ms) FROM events WHERE event_type = 'generate' AND timestamp >= ?
	`, since).Scan(&avgDuration)
	if err != nil {
		return stats, err
	}
	if avgDuration.Valid {
		stats.AvgRunDuration = time.Duration(avgDuration.Float64) * time.Millisecond
	}

	stats.TopProjectTypes, err = t.getTopProjectTypes(since)
	if err != nil {
		return stats, err
	}

	stats.TopCommands, err = t.getTopCommands(since)
	if err != nil {
		return stats, err
	}

	stats.CommonErrors, err = t.getCommonErrors(since)
	if err != nil {
		return stats, err
	}

	return stats, nil
}

func (t *TelemetryDB) getTopProjectTypes(since time.Time) ([]ProjectTypeStat, error) {
	query := `
		SELECT project_type, COUNT(*) as count,
			(COUNT(CASE WHEN success = 1 THEN 1 END) * 100.0 / COUNT(*)) as success_rate
		FROM events WHERE event_type = 'generate' AND project_type != '' AND timestamp >= ?
		GROUP BY project_type ORDER BY count DESC, project_type LIMIT 5
	`

	rows, err := t.db.Query(query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []ProjectTypeStat
	for rows.Next() {
		var ps ProjectTypeStat
		var successRate sql.NullFloat64
		if err := rows.Scan(&ps.ProjectType, &ps.Count, &successRate); err != nil {
			return nil, err
		}
		if successRate.Valid {
			ps.SuccessRate = successRate.Float64
		}
		types = append(types, ps)
	}

	return types, rows.Err()
}

func (t *TelemetryDB) getTopCommands(since time.Time) ([]CommandStat, error) {
	query := `
		SELECT command, COUNT(*) as count
		FROM events WHERE command != '' AND timestamp >= ?
		GROUP BY command ORDER BY count DESC, command LIMIT 10
	`

	rows, err := t.db.Query(query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commands []CommandStat
	for rows.Next() {
		var cs CommandStat
		if err := rows.Scan(&cs.Command, &cs.Count); err != nil {
			return nil, err
		}
		commands = append(commands, cs)
	}

	return commands, rows.Err()
}

func (t *TelemetryDB) getCommonErrors(since time.Time) ([]ErrorStat, error) {
	query := `
		SELECT error_type, COUNT(*) as count, MIN(timestamp) as first_seen, MAX(timestamp) as last_seen
		FROM events WHERE success = 0 AND error_type != '' AND timestamp >= ?
		GROUP BY error_type ORDER BY count DESC, error_type LIMIT 10
	`

	rows, err := t.db.Query(query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errors []ErrorStat
	for rows.Next() {
		var es ErrorStat
		var firstSeenStr, lastSeenStr string
		if err := rows.Scan(&es.ErrorType, &es.Count, &firstSeenStr, &lastSeenStr); err != nil {
			return nil, err
		}
		if firstSeenStr != "" {
			es.FirstSeen, _ = time.Parse(sqliteTimeLayout, firstSeenStr)
		}
		if lastSeenStr != "" {
			es.LastSeen, _ = time.Parse(sqliteTimeLayout, lastSeenStr)
		}
		errors = append(errors, es)
	}

	return errors, rows.Err()
}

// CountEvents returns the number of stored events.
func (t *TelemetryDB) CountEvents() (int, error) {
	var n int
	err := t.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// DeleteOldEvents removes events older than the specified duration
func (t *TelemetryDB) DeleteOldEvents(olderThan time.Duration) error {
	cutoff := time.Now().UTC().Add(-olderThan)
	_, err := t.db.Exec(`DELETE FROM events WHERE timestamp < ?`, cutoff)
	return err
}

// Purge removes every stored event and returns how many were deleted.
func (t *TelemetryDB) Purge() (int64, error) {
	res, err := t.db.Exec(`DELETE FROM events`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the database connection
func (t *TelemetryDB) Close() error {
	return t.db.Close()
}
