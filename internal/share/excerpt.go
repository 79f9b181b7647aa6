package share

import (
	"html"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

const maxExcerptRunes = 200

var textPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// DeriveDescription turns an article body into a short plain-text summary
// for articles that have no description of their own. Returns "" for an
// empty body.
func DeriveDescription(content string, pageURL *url.URL) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	doc := "<!DOCTYPE html><html><head></head><body><article>" + content + "</article></body></html>"

	var text string
	if article, err := readability.FromReader(strings.NewReader(doc), pageURL); err == nil {
		text = article.Excerpt
	}
	if strings.TrimSpace(text) == "" {
		text = content
	}

	return truncate(plainText(text), maxExcerptRunes)
}

// plainText strips all markup and collapses whitespace.
func plainText(s string) string {
	stripped := html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(stripped), " ")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)[:max]
	cut := string(runes)
	// Prefer cutting on a word boundary when one is reasonably close.
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}
