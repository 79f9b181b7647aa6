package model

// ArticleSummary is the read-only slice of a knowledge article needed to
// build a share preview. Optional columns decode to "" when absent.
type ArticleSummary struct {
	ID              string `json:"id"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	OGTitle         string `json:"og_title"`
	OGDescription   string `json:"og_description"`
	OGImage         string `json:"og_image"`
	ImageURL        string `json:"image_url"`
	ImageAlt        string `json:"image_alt"`
	Content         string `json:"content,omitempty"`
	Published       bool   `json:"published"`
}

// SharePayload is everything the preview document renders.
type SharePayload struct {
	Title        string
	Description  string
	Image        string
	ImageAlt     string
	CanonicalURL string
}
