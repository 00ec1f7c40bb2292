package report

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sajjad-MoBe/fetchprobe/outcome"
)

// Reporter consumes the outcome of a fetch operation. The outcome is
// terminal: nothing is propagated past the reporter.
type Reporter interface {
	Report(url string, out outcome.Outcome)
}

// LogReporter reports outcomes to structured log sinks: successes with
// the parsed value on the standard sink, failures with kind and reason
// on the error sink.
type LogReporter struct {
	out    zerolog.Logger
	errOut zerolog.Logger
}

// NewLogReporter creates a reporter writing to the given sinks
func NewLogReporter(out, errOut io.Writer) *LogReporter {
	return &LogReporter{
		out:    zerolog.New(out).With().Timestamp().Logger(),
		errOut: zerolog.New(errOut).With().Timestamp().Logger(),
	}
}

// Report logs the outcome
func (r *LogReporter) Report(url string, out outcome.Outcome) {
	if doc, ok := out.Document(); ok {
		r.out.Info().
			Str("url", url).
			Interface("document", doc.Value()).
			Msg("fetch succeeded")
		return
	}

	ferr := out.Err()
	r.errOut.Error().
		Str("url", url).
		Str("kind", string(ferr.Kind)).
		Msg(ferr.Message)
}

// Recorder is a Reporter that captures outcomes for inspection in tests
type Recorder struct {
	mu      sync.Mutex
	entries []RecordedOutcome
}

// RecordedOutcome is one captured report
type RecordedOutcome struct {
	URL     string
	Outcome outcome.Outcome
}

// Report captures the outcome
func (r *Recorder) Report(url string, out outcome.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, RecordedOutcome{URL: url, Outcome: out})
}

// Entries returns a copy of the captured reports
func (r *Recorder) Entries() []RecordedOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedOutcome(nil), r.entries...)
}
