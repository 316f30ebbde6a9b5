package docx2md

// Logger receives diagnostic events from a Converter. Arguments after the
// message are alternating keys and values.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// runLogger tags every event of one conversion with its run id.
type runLogger struct {
	Logger
	runID string
}

func (l runLogger) with(args []any) []any {
	return append([]any{"run_id", l.runID}, args...)
}

func (l runLogger) Debug(msg string, args ...any) { l.Logger.Debug(msg, l.with(args)...) }
func (l runLogger) Info(msg string, args ...any)  { l.Logger.Info(msg, l.with(args)...) }
func (l runLogger) Warn(msg string, args ...any)  { l.Logger.Warn(msg, l.with(args)...) }
func (l runLogger) Error(msg string, args ...any) { l.Logger.Error(msg, l.with(args)...) }
