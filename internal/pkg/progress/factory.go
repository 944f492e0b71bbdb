package progress

import (
	"os"
	"strings"
	"time"

	"github.com/Kargones/boxing-smoke/internal/constants"
)

// DefaultThrottleInterval ограничивает частоту перерисовки bar.
const DefaultThrottleInterval = 100 * time.Millisecond

// EnvProgressStream включает JSON-lines события прогресса в stderr при json выводе.
const EnvProgressStream = "BR_PROGRESS_STREAM"

// New выбирает реализацию:
//  1. BR_SHOW_PROGRESS=false → NoopProgress
//  2. Options.Format=json → JSONProgress при BR_PROGRESS_STREAM=true, иначе NoopProgress
//  3. Output - терминал → TTYProgress
//  4. иначе → NonTTYProgress
func New(opts Options) Progress {
	if opts.ThrottleInterval == 0 {
		opts.ThrottleInterval = DefaultThrottleInterval
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	if strings.EqualFold(os.Getenv(constants.EnvShowProgress), "false") {
		return NewNoOp()
	}

	if strings.EqualFold(opts.Format, "json") {
		if os.Getenv(EnvProgressStream) == "true" {
			return NewJSONProgress(opts)
		}
		// Текстовые строки в stderr мешают парсингу JSON в CI.
		return NewNoOp()
	}

	if IsTTY(opts.Output) {
		return NewTTYProgress(opts)
	}
	return NewNonTTYProgress(opts)
}
