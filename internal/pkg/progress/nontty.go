package progress

import (
	"time"

	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
)

// NonTTYProgress пишет в лог на каждой границе 10%. Для CI и pipe.
type NonTTYProgress struct {
	opts                Options
	log                 logging.Logger
	startTime           time.Time
	lastReportedPercent int
	message             string
}

// NewNonTTYProgress создаёт NonTTYProgress.
func NewNonTTYProgress(opts Options) *NonTTYProgress {
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &NonTTYProgress{opts: opts, log: log}
}

func (p *NonTTYProgress) Start(message string) {
	p.startTime = time.Now()
	p.message = message
	p.lastReportedPercent = 0
	p.log.Info("Прогон начат", "message", message, "total", p.opts.Total)
}

func (p *NonTTYProgress) Update(current int64, message string) {
	if message != "" {
		p.message = message
	}

	threshold := (percentOf(current, p.opts.Total) / 10) * 10
	if threshold > p.lastReportedPercent && threshold > 0 && threshold < 100 {
		p.lastReportedPercent = threshold
		p.log.Info("Прогресс прогона",
			"percent", threshold,
			"elapsed", FormatDuration(time.Since(p.startTime)),
			"message", p.message,
		)
	}
}

func (p *NonTTYProgress) SetTotal(total int64) {
	p.opts.Total = total
}

func (p *NonTTYProgress) Finish() {
	p.log.Info("Прогон завершён", "duration", FormatDuration(time.Since(p.startTime)))
}
