package dom

import (
	"net/url"
	"sync/atomic"
)

// Document is the root of a shim tree: an <html> element with <head> and
// <body>, plus the request's notion of the current location.
type Document struct {
	root     *Element
	head     *Element
	body     *Element
	location *url.URL
}

// NewDocument creates an empty document with html/head/body in place.
func NewDocument() *Document {
	root := NewElement("html")
	head := NewElement("head")
	body := NewElement("body")
	root.AppendChild(head)
	root.AppendChild(body)
	return &Document{root: root, head: head, body: body}
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *Element {
	return NewElement(tag)
}

// CreateTextNode returns a detached text node.
func (d *Document) CreateTextNode(text string) *Text {
	return &Text{Data: text}
}

// CreateComment returns a detached comment node.
func (d *Document) CreateComment(text string) *Comment {
	return &Comment{Data: text}
}

// CreateDocumentFragment returns an empty fragment.
func (d *Document) CreateDocumentFragment() *Fragment {
	return &Fragment{}
}

// Root returns the <html> element.
func (d *Document) Root() *Element { return d.root }

// Head returns the <head> element.
func (d *Document) Head() *Element { return d.head }

// Body returns the <body> element.
func (d *Document) Body() *Element { return d.body }

// SetLocation points the document at the request URL.
func (d *Document) SetLocation(u *url.URL) { d.location = u }

// Location returns the current URL; defaults to "/" when unset.
func (d *Document) Location() *url.URL {
	if d.location == nil {
		return &url.URL{Path: "/"}
	}
	return d.location
}

// Styles returns the text of every <style> element in the head,
// deduplicated in insertion order. Each render collects only what was
// written into its own head.
func (d *Document) Styles() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, el := range d.head.Children() {
		if el.TagName != "style" {
			continue
		}
		css := el.TextContent()
		if css == "" {
			continue
		}
		if _, dup := seen[css]; dup {
			continue
		}
		seen[css] = struct{}{}
		out = append(out, css)
	}
	return out
}

// =============================================================================
// Ambient document
// =============================================================================

// Component code written for a browser reads the document from an ambient
// global. Full renders are serialized by the renderer's mutex, so a single
// slot is sufficient; it always holds a live document so that a data-fetch
// callback settling after teardown touches an empty tree instead of nil.
var current atomic.Pointer[Document]

func init() {
	current.Store(NewDocument())
}

// Install makes d the ambient document and returns the previous one.
func Install(d *Document) *Document {
	if d == nil {
		d = NewDocument()
	}
	return current.Swap(d)
}

// Doc returns the ambient document.
func Doc() *Document {
	return current.Load()
}

// Reset replaces the ambient document with a fresh empty one. Called on
// render teardown, including the error path.
func Reset() {
	current.Store(NewDocument())
}
