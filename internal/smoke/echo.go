package smoke

import (
	"bytes"
	"encoding/json"
	"io"
)

// echoIndent - отступ при pretty-print ответа.
const echoIndent = "  "

// prettyJSON форматирует JSON тело с отступами. Невалидный JSON возвращается как есть.
func prettyJSON(body []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", echoIndent); err != nil {
		return body
	}
	return buf.Bytes()
}

// writeEcho печатает ответ шага: строку-заголовок и тело.
func writeEcho(w io.Writer, stepName string, body []byte) error {
	out := prettyJSON(body)
	if _, err := io.WriteString(w, "--- "+stepName+"\n"); err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// embedResponse возвращает тело для встраивания в JSON отчёт.
// Не-JSON тело встраивается как JSON строка.
func embedResponse(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.Bytes()
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(string(trimmed)); err != nil {
		return nil
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}
