// Package ogtags extracts link-preview metadata from an HTML document.
package ogtags

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Tags is the preview metadata found in a document. Values are unescaped.
type Tags struct {
	Title     string
	Canonical string
	// Refresh is the target of a <meta http-equiv="refresh"> tag.
	Refresh string
	// Meta maps og:*, twitter:* and description keys to their content.
	Meta map[string]string
}

// Extract parses r and collects preview metadata. The first occurrence of
// each key wins.
func Extract(r io.Reader) (*Tags, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	tags := &Tags{Meta: make(map[string]string)}
	walk(doc, tags)
	return tags, nil
}

// Get returns the content for key, or "".
func (t *Tags) Get(key string) string {
	return t.Meta[key]
}

func walk(n *html.Node, tags *Tags) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if tags.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				tags.Title = strings.TrimSpace(n.FirstChild.Data)
			}
		case "link":
			if strings.EqualFold(attr(n, "rel"), "canonical") && tags.Canonical == "" {
				tags.Canonical = attr(n, "href")
			}
		case "meta":
			processMeta(n, tags)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, tags)
	}
}

func processMeta(n *html.Node, tags *Tags) {
	content := attr(n, "content")

	if strings.EqualFold(attr(n, "http-equiv"), "refresh") {
		if tags.Refresh == "" {
			tags.Refresh = refreshTarget(content)
		}
		return
	}

	key := attr(n, "property")
	if key == "" {
		key = attr(n, "name")
	}
	if !strings.HasPrefix(key, "og:") && !strings.HasPrefix(key, "twitter:") && key != "description" {
		return
	}
	if _, seen := tags.Meta[key]; !seen {
		tags.Meta[key] = content
	}
}

// refreshTarget pulls the URL out of "0; url=https://...".
func refreshTarget(content string) string {
	_, after, found := strings.Cut(content, ";")
	if !found {
		return ""
	}
	after = strings.TrimSpace(after)
	if len(after) >= 4 && strings.EqualFold(after[:4], "url=") {
		return strings.Trim(strings.TrimSpace(after[4:]), `'"`)
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
