package mes

import "github.com/rs/zerolog"

// CallEvent records metadata about a single MES call.
type CallEvent struct {
	Method    string
	Endpoint  string
	Status    int
	Attempts  int
	LatencyMs int64
	Cached    bool
	Success   bool
	ErrorCode string
}

// Observer receives events about MES calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events through zerolog.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates an Observer that logs events at debug level and
// failures at warn.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ev := o.logger.Debug()
	if !event.Success {
		ev = o.logger.Warn().Str("error_code", event.ErrorCode)
	}
	ev.Str("method", event.Method).
		Str("endpoint", event.Endpoint).
		Int("status", event.Status).
		Int("attempts", event.Attempts).
		Int64("latency_ms", event.LatencyMs).
		Bool("cached", event.Cached).
		Msg("mes_call")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// MultiObserver fans an event out to several observers.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event CallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}
