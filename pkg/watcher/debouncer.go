package watcher

import (
	"context"
	"time"

	"github.com/ritzau/vt-designer/pkg/logging"
)

// Debouncer merges bursts of change events so a project is reloaded once per
// save rather than once per write.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer. An event is let through after
// quietPeriod without further events, or at the latest maxWait after the
// first one.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		pending  *ChangeEvent
		quiet    = stoppedTimer()
		deadline = stoppedTimer()
		count    int
	)

	flush := func() {
		quiet.Stop()
		deadline.Stop()
		if pending == nil {
			return
		}
		logging.Debug("Flushing accumulated events", "count", count, "type", pending.Type.String())
		pending.Timestamp = time.Now()
		select {
		case d.output <- *pending:
		case <-ctx.Done():
		}
		pending, count = nil, 0
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				return
			}
			if pending == nil {
				pending = &ChangeEvent{Type: event.Type}
				deadline.Reset(d.maxWait)
			}
			// The latest state of the file wins
			pending.Type = event.Type
			pending.Paths = append(pending.Paths, event.Paths...)
			count++
			quiet.Reset(d.quietPeriod)

		case <-quiet.C:
			flush()

		case <-deadline.C:
			flush()
		}
	}
}

func stoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
