package ssr

import (
	"fmt"
	"os"
	"strings"
)

// Page template anchors. A template must contain one of the outlet
// anchors; the head and body anchors are required for CSS and data
// script injection.
const (
	outletComment = "<!--ssr-outlet-->"
	outletDiv     = `<div id="app">`
	headAnchor    = "</head>"
	bodyAnchor    = "</body>"
)

// Template is an HTML app shell into which rendered output is spliced:
// the rendered HTML at the outlet, collected CSS before </head>, and
// data scripts before </body>.
type Template struct {
	raw string
}

// DefaultTemplate is the shell used when none is configured.
const DefaultTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
<div id="app"></div>
</body>
</html>
`

// ParseTemplate validates and wraps a template string.
func ParseTemplate(s string) (*Template, error) {
	if !strings.Contains(s, outletComment) && !strings.Contains(s, outletDiv) {
		return nil, fmt.Errorf("ssr: template has neither %q nor %q", outletComment, outletDiv)
	}
	if !strings.Contains(s, headAnchor) {
		return nil, fmt.Errorf("ssr: template missing %q", headAnchor)
	}
	if !strings.Contains(s, bodyAnchor) {
		return nil, fmt.Errorf("ssr: template missing %q", bodyAnchor)
	}
	return &Template{raw: s}, nil
}

// LoadTemplate reads and parses a template file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ssr: read template: %w", err)
	}
	return ParseTemplate(string(data))
}

// Execute splices rendered HTML, CSS and trailing scripts into the shell
// and returns the complete document.
func (t *Template) Execute(html string, css []string, scripts string) string {
	prefix, suffix := t.Split(html, css)
	return prefix + scripts + suffix
}

// Split returns the document in two parts, cut immediately before
// </body>. Streaming responses flush the prefix first, then append
// boundary chunks and data scripts, then the suffix.
func (t *Template) Split(html string, css []string) (prefix, suffix string) {
	doc := t.raw

	if strings.Contains(doc, outletComment) {
		doc = strings.Replace(doc, outletComment, html, 1)
	} else {
		// Splice inside the app div, keeping the div itself.
		doc = strings.Replace(doc, outletDiv, outletDiv+html, 1)
	}

	if len(css) > 0 {
		var b strings.Builder
		for _, c := range css {
			b.WriteString("<style>")
			b.WriteString(c)
			b.WriteString("</style>\n")
		}
		doc = strings.Replace(doc, headAnchor, b.String()+headAnchor, 1)
	}

	idx := strings.LastIndex(doc, bodyAnchor)
	if idx < 0 {
		return doc, ""
	}
	return doc[:idx], doc[idx:]
}
