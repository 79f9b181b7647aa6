package share

import (
	"fmt"
	"net/url"
	"strings"

	"petskub/internal/model"
)

// Copy used when an article is missing or lacks its own values.
const (
	DefaultTitle        = "Petskub - บทความ"
	FallbackDescription = "อ่านบทความจากชุมชนคนรักแมว Petskub รวมเทคนิคและความรู้ในการดูแลน้องแมว"
	DefaultDescription  = "สำรวจบทความแมวจากชุมชน Petskub ช่วยกันดูแลน้องแมวให้มีชีวิตที่ดีขึ้น"
	DefaultImage        = "https://images.unsplash.com/photo-1543852786-1cf6624b9987?auto=format&fit=crop&w=1200&q=80"
	DefaultImageAlt     = "Petskub Article"
	knowledgePath       = "/knowledge/"
)

// FirstNonEmpty returns the first value that is not blank, or "".
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s the way browsers do for a single path or
// query component.
func encodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}

// normalizeURL percent-encodes every byte that html/template would encode in
// a URL attribute, so the URL reads the same in href and content attributes.
// Existing escapes are kept.
func normalizeURL(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			b.WriteByte(c)
		case strings.IndexByte("-._~!#$&*+,/:;=?@[]%", c) >= 0:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// CanonicalURL is the public article page for slug, or for id when the
// article has no slug.
func CanonicalURL(site, slug, id string) string {
	site = strings.TrimSuffix(site, "/")
	if slug != "" {
		return normalizeURL(site + knowledgePath + slug)
	}
	return normalizeURL(site + knowledgePath + encodeURIComponent(id))
}

// FallbackPayload is served when the article cannot be resolved.
func FallbackPayload(site, id string) model.SharePayload {
	return model.SharePayload{
		Title:        DefaultTitle,
		Description:  FallbackDescription,
		Image:        DefaultImage,
		ImageAlt:     DefaultTitle,
		CanonicalURL: CanonicalURL(site, "", id),
	}
}

// ArticlePayload builds the preview for a resolved article. Open Graph
// fields win over meta fields, which win over the raw article values.
func ArticlePayload(site string, a *model.ArticleSummary) model.SharePayload {
	canonical := CanonicalURL(site, a.Slug, a.ID)

	title := FirstNonEmpty(a.OGTitle, a.MetaTitle, a.Title, DefaultTitle)

	var excerpt string
	if FirstNonEmpty(a.OGDescription, a.MetaDescription) == "" {
		pageURL, _ := url.Parse(canonical)
		excerpt = DeriveDescription(a.Content, pageURL)
	}

	return model.SharePayload{
		Title:        title,
		Description:  FirstNonEmpty(a.OGDescription, a.MetaDescription, excerpt, DefaultDescription),
		Image:        FirstNonEmpty(a.OGImage, a.ImageURL, DefaultImage),
		ImageAlt:     FirstNonEmpty(a.ImageAlt, title, DefaultImageAlt),
		CanonicalURL: canonical,
	}
}
