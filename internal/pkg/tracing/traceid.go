// Package tracing связывает прогон смоук-сценария с логами и OpenTelemetry спанами.
//
// Trace ID прогона - 32 hex символа (W3C Trace Context), один и тот же в логах,
// в JSON выводе, в истории запусков и в заголовке traceparent запросов к API.
package tracing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var fallbackCounter atomic.Uint64

// GenerateTraceID возвращает случайный 32-символьный hex trace ID.
// При недоступности crypto/rand используется timestamp и счётчик.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID всегда даёт ровно 32 символа: %016x для каждого uint64.
func fallbackTraceID() string {
	counter := fallbackCounter.Add(1)
	timestamp := uint64(time.Now().UnixNano()) //nolint:gosec // знак не важен
	return fmt.Sprintf("%016x%016x", timestamp, counter)
}
