package telemetry

import "time"

const (
	EventGenerate = "generate"
	EventCommand  = "command"
)

// Event is one CLI invocation. ProjectType is empty for commands that do not
// produce artifacts.
type Event struct {
	ID           string
	Timestamp    time.Time
	SessionID    string
	EventType    string
	Command      string
	ProjectType  string
	FilesWritten int
	Duration     time.Duration
	Success      bool
	ErrorType    string
}

type Stats struct {
	TotalEvents     int
	TotalRuns       int
	SuccessRate     float64
	AvgRunDuration  time.Duration
	TopProjectTypes []ProjectTypeStat
	TopCommands     []CommandStat
	CommonErrors    []ErrorStat
}

type ProjectTypeStat struct {
	ProjectType string
	Count       int
	SuccessRate float64
}

type CommandStat struct {
	Command string
	Count   int
}

type ErrorStat struct {
	ErrorType string
	Count     int
	FirstSeen time.Time
	LastSeen  time.Time
}

type Insight struct {
	Type        string
	Title       string
	Description string
	Severity    string
}
