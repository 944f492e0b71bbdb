package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONProgress пишет события в формате JSON-lines.
type JSONProgress struct {
	opts      Options
	encoder   *json.Encoder
	startTime time.Time
	lastEmit  time.Time
}

// NewJSONProgress создаёт JSONProgress.
func NewJSONProgress(opts Options) *JSONProgress {
	p := &JSONProgress{opts: opts}
	if opts.Output != nil {
		p.encoder = json.NewEncoder(opts.Output)
	}
	return p
}

func (p *JSONProgress) emit(event Event) {
	if p.encoder == nil {
		return
	}
	if err := p.encoder.Encode(event); err != nil {
		fmt.Fprintf(os.Stderr, "progress: encode error: %v\n", err) //nolint:errcheck // writing to stderr
	}
}

func (p *JSONProgress) Start(message string) {
	p.startTime = time.Now()
	p.lastEmit = time.Time{}
	p.emit(Event{Type: "progress_start", Message: message})
}

func (p *JSONProgress) Update(current int64, message string) {
	if p.opts.ThrottleInterval > 0 && time.Since(p.lastEmit) < p.opts.ThrottleInterval {
		return
	}
	p.lastEmit = time.Now()

	event := Event{Type: "progress", Message: message}
	if p.opts.Total > 0 {
		percent := percentOf(current, p.opts.Total)
		event.Percent = &percent

		if remaining := p.opts.Total - current; current > 0 && remaining > 0 {
			elapsed := time.Since(p.startTime)
			eta := int64(time.Duration(float64(elapsed) / float64(current) * float64(remaining)).Seconds())
			if eta > 0 {
				event.ETASeconds = &eta
			}
		}
	}
	p.emit(event)
}

func (p *JSONProgress) SetTotal(total int64) {
	p.opts.Total = total
}

func (p *JSONProgress) Finish() {
	p.emit(Event{Type: "progress_end", DurationMs: time.Since(p.startTime).Milliseconds()})
}
