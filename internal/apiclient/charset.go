package apiclient

import (
	"bytes"
	"io"
	"mime"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// decodeBody перекодирует тело в UTF-8, если Content-Type объявляет другую кодировку.
// Маркер успеха ищется по байтам, поэтому тело в cp1251 иначе никогда бы не совпало.
// При неизвестной кодировке или ошибке декодирования возвращается исходное тело.
func decodeBody(body []byte, contentType string) []byte {
	if len(body) == 0 || contentType == "" {
		return body
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body
	}
	charset := strings.ToLower(strings.TrimSpace(params["charset"]))
	if charset == "" || charset == "utf-8" || charset == "utf8" || charset == "us-ascii" {
		return body
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return body
	}

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(body), enc.NewDecoder()))
	if err != nil {
		return body
	}
	return decoded
}
