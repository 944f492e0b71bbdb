package progress

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const barWidth = 30

// TTYProgress рисует перерисовываемый bar в терминале.
type TTYProgress struct {
	mu        sync.Mutex
	opts      Options
	startTime time.Time
	current   int64
	lastDraw  time.Time
	message   string
}

// NewTTYProgress создаёт TTYProgress.
func NewTTYProgress(opts Options) *TTYProgress {
	return &TTYProgress{opts: opts}
}

func (p *TTYProgress) Start(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.message = message
	p.current = 0
	p.lastDraw = time.Time{}
}

func (p *TTYProgress) Update(current int64, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	if message != "" {
		p.message = message
	}

	if p.opts.ThrottleInterval > 0 && time.Since(p.lastDraw) < p.opts.ThrottleInterval {
		return
	}
	p.lastDraw = time.Now()
	p.draw()
}

func (p *TTYProgress) SetTotal(total int64) {
	p.mu.Lock()
	p.opts.Total = total
	p.mu.Unlock()
}

func (p *TTYProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.draw()
	if p.opts.Output != nil {
		_, _ = fmt.Fprintln(p.opts.Output) //nolint:errcheck // terminal output
	}
}

// draw выводит строку вида "[=====>    ] 45% | ETA: 2s | create-boxer".
func (p *TTYProgress) draw() {
	if p.opts.Output == nil {
		return
	}

	percent := percentOf(p.current, p.opts.Total)
	line := fmt.Sprintf("\r%s %d%%", renderBar(percent), percent)

	if p.opts.ShowETA && p.opts.Total > 0 && p.current > 0 {
		line += " | ETA: " + p.eta()
	}
	if p.message != "" {
		line += " | " + p.message
	}
	line += "\033[K"

	_, _ = fmt.Fprint(p.opts.Output, line) //nolint:errcheck // terminal output
}

// renderBar не рисует стрелку при 0% и 100%.
func renderBar(percent int) string {
	filled := percent * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < barWidth; i++ {
		switch {
		case i < filled:
			bar.WriteString("=")
		case i == filled && filled > 0:
			bar.WriteString(">")
		default:
			bar.WriteString(" ")
		}
	}
	bar.WriteString("]")
	return bar.String()
}

func (p *TTYProgress) eta() string {
	remainingWork := p.opts.Total - p.current
	if remainingWork <= 0 {
		return "<1s"
	}
	elapsed := time.Since(p.startTime)
	remaining := time.Duration(float64(elapsed) / float64(p.current) * float64(remainingWork)).Round(time.Second)
	if remaining < time.Second {
		return "<1s"
	}
	return FormatDuration(remaining)
}
