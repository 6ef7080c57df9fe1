package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/verso-dev/verso/pkg/vdom"
)

// Escaping round-trips: parsing serializer output with a real HTML parser
// must yield the original text content back.
func TestEscapingRoundTrips(t *testing.T) {
	payloads := []string{
		"plain text",
		`<script>alert("xss")</script>`,
		`a && b < c > d "quoted"`,
		"unicode: héllo — ✓",
		`<!-- not a comment -->`,
	}
	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			out := mustSerialize(t, vdom.El("div", vdom.Text(payload)))

			doc, err := html.Parse(strings.NewReader(out))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := textOf(doc); got != payload {
				t.Errorf("round-trip mismatch: got %q, want %q", got, payload)
			}
		})
	}
}

// Re-serializing a parsed tree of our own output yields equivalent text:
// the output is stable under a parse/serialize cycle.
func TestSerializeIdempotentUnderReparse(t *testing.T) {
	node := vdom.El("section", vdom.Class("c"),
		vdom.El("h2", `Tom & Jerry's "best" <episodes>`),
		vdom.El("p", "1 < 2 > 0"),
	)
	out := mustSerialize(t, node)

	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		t.Fatalf("re-render: %v", err)
	}

	reparsed, err := html.Parse(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if textOf(doc) != textOf(reparsed) {
		t.Errorf("text drifted across cycles: %q vs %q", textOf(doc), textOf(reparsed))
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
