// Package preview renders the portfolio site from a document. The /preview
// route is the second rendering context of the editor: it reads the same
// stored draft key on every request and owes the editor nothing back.
package preview

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
)

// Location is the well-known address of the rendering context.
const Location = "/preview"

//go:embed templates/site.html
var templateFS embed.FS

var siteTemplate *template.Template

func init() {
	funcMap := template.FuncMap{
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}

	content, err := templateFS.ReadFile("templates/site.html")
	if err != nil {
		siteTemplate = template.Must(template.New("site").Funcs(funcMap).Parse(fallbackTemplate))
		return
	}
	siteTemplate = template.Must(template.New("site").Funcs(funcMap).Parse(string(content)))
}

// WorkView pairs a work item with its resolved category name. A dangling
// categoryId resolves to an empty name and the item still renders.
type WorkView struct {
	Title        string
	Subtitle     string
	CategoryName string
	Image        string
	LargeImage   string
}

// TemplateData is the flattened document handed to the site template.
type TemplateData struct {
	SiteTitle       string
	MetaDescription string
	MetaAuthor      string
	Logo            string

	HeroTitle    string
	HeroName     string
	HeroSubtitle string
	HeroImage    string

	AboutTitle       string
	AboutDescription string
	AboutImage       string
	Features         []FeatureView

	Education  []EntryView
	Experience []EntryView
	Skills     []SkillView
	Services   []ServiceView
	Categories []string
	Works      []WorkView

	ContactAddress string
	ContactPhone   string
	ContactEmail   string
	FormActionURL  string
}

type FeatureView struct {
	Title       string
	Description string
}

type EntryView struct {
	Heading    string
	Subheading string
	Year       string
}

type SkillView struct {
	Name       string
	Percentage int
}

type ServiceView struct {
	Icon        string
	Title       string
	Description string
}

// RenderHTML renders the full site page for the given template data.
func RenderHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := siteTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const fallbackTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.SiteTitle}}</title>
</head>
<body>
  <h1>{{.HeroName}}</h1>
  <p>{{.HeroSubtitle}}</p>
</body>
</html>`
