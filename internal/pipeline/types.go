package pipeline

// Stage describes a phase of reading one document.
type Stage string

const (
	// StageLoad reads the file and normalizes its text.
	StageLoad Stage = "load"
	// StageLex turns text into tokens.
	StageLex Stage = "lex"
	// StageParse builds the syntax tree.
	StageParse Stage = "parse"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished successfully.
	StatusDone Status = "done"
	// StatusCached indicates the tree came from the disk cache.
	StatusCached Status = "cached"
	// StatusError indicates the stage failed.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Err    error
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: directory runs report from several workers.
type ProgressSink interface {
	OnEvent(Event)
}

// Emit sends evt to sink when sink is set.
func Emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
