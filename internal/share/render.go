package share

import (
	"bytes"
	"embed"
	"html/template"

	"petskub/internal/model"
)

//go:embed templates/article.html
var templateFS embed.FS

// html/template escapes every interpolated value for its context, so
// user-written titles and descriptions cannot inject markup.
var articleTemplate = template.Must(template.ParseFS(templateFS, "templates/article.html"))

// Render produces the share preview document for p.
func Render(p model.SharePayload) ([]byte, error) {
	var buf bytes.Buffer
	if err := articleTemplate.Execute(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
