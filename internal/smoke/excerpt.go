package smoke

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// maxExcerptRunes ограничивает фрагмент тела в сообщении об ошибке.
const maxExcerptRunes = 160

// excerpt возвращает короткий фрагмент тела для сообщения о провале.
// Для HTML (например, debug страница Flask) берётся <title>.
func excerpt(body []byte, contentType string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "<пустое тело>"
	}

	if isHTML(trimmed, contentType) {
		if title := htmlTitle(trimmed); title != "" {
			return "HTML: " + title
		}
	}

	text := strings.Join(strings.Fields(string(trimmed)), " ")
	if utf8.RuneCountInString(text) <= maxExcerptRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxExcerptRunes]) + "..."
}

func isHTML(body []byte, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return true
	}
	return bytes.HasPrefix(body, []byte("<"))
}

func htmlTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
