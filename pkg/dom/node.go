package dom

import (
	"errors"
	"sort"
	"strings"
)

// NodeType discriminates the shim node kinds.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	FragmentNode
	RawNode
)

// Node is the common interface of all shim nodes.
type Node interface {
	NodeType() NodeType
	// ParentElement returns the current parent, or nil when detached.
	// The back-reference never implies ownership; the parent's child
	// list does.
	ParentElement() *Element
	setParent(p *Element)
}

// IsNode reports whether v is a shim node. Component code uses this for
// instanceof-style dispatch without depending on host DOM types.
func IsNode(v any) bool {
	switch n := v.(type) {
	case *Element:
		return n != nil
	case *Text:
		return n != nil
	case *Comment:
		return n != nil
	case *Fragment:
		return n != nil
	case *rawNode:
		return n != nil
	default:
		return false
	}
}

var errNotChild = errors.New("dom: node is not a child of this element")

// Element is an element shim node.
type Element struct {
	TagName string

	attrs    map[string]string
	classes  []string
	styles   map[string]string
	styleKey []string
	children []Node
	parent   *Element
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{TagName: strings.ToLower(tag)}
}

func (e *Element) NodeType() NodeType      { return ElementNode }
func (e *Element) ParentElement() *Element { return e.parent }
func (e *Element) setParent(p *Element)    { e.parent = p }

// Text is a text shim node.
type Text struct {
	Data   string
	parent *Element
}

func (t *Text) NodeType() NodeType      { return TextNode }
func (t *Text) ParentElement() *Element { return t.parent }
func (t *Text) setParent(p *Element)    { t.parent = p }

// Comment is a comment shim node. Comments survive serialization as
// "<!--data-->" and act as positional anchors for hydration.
type Comment struct {
	Data   string
	parent *Element
}

func (c *Comment) NodeType() NodeType      { return CommentNode }
func (c *Comment) ParentElement() *Element { return c.parent }
func (c *Comment) setParent(p *Element)    { c.parent = p }

// rawNode holds verbatim HTML installed via SetInnerHTML.
type rawNode struct {
	html   string
	parent *Element
}

func (r *rawNode) NodeType() NodeType      { return RawNode }
func (r *rawNode) ParentElement() *Element { return r.parent }
func (r *rawNode) setParent(p *Element)    { r.parent = p }

// Fragment is a transient container. Attaching it to an element splices
// its children in place; the fragment itself never appears in a tree and
// owns nothing afterwards.
type Fragment struct {
	children []Node
}

func (f *Fragment) NodeType() NodeType      { return FragmentNode }
func (f *Fragment) ParentElement() *Element { return nil }
func (f *Fragment) setParent(*Element)      {}

// AppendChild adds a node to the fragment.
func (f *Fragment) AppendChild(child Node) {
	if child == nil {
		return
	}
	if frag, ok := child.(*Fragment); ok {
		f.children = append(f.children, frag.take()...)
		return
	}
	detach(child)
	f.children = append(f.children, child)
}

// ChildNodes returns a copy of the fragment's children.
func (f *Fragment) ChildNodes() []Node {
	out := make([]Node, len(f.children))
	copy(out, f.children)
	return out
}

// take empties the fragment and returns its former children.
func (f *Fragment) take() []Node {
	kids := f.children
	f.children = nil
	return kids
}

// detach severs a node from its current parent: both the parent pointer
// and the child-list entry go in the same operation.
func detach(n Node) {
	p := n.ParentElement()
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.setParent(nil)
}

// =============================================================================
// Child list mutations
// =============================================================================

// AppendChild appends a node. A fragment argument contributes its
// children in place and ends up empty.
func (e *Element) AppendChild(child Node) {
	if child == nil {
		return
	}
	if frag, ok := child.(*Fragment); ok {
		for _, c := range frag.take() {
			e.AppendChild(c)
		}
		return
	}
	detach(child)
	child.setParent(e)
	e.children = append(e.children, child)
}

// InsertBefore inserts child before ref. A nil ref appends. Returns an
// error if ref is not a child of e.
func (e *Element) InsertBefore(child, ref Node) error {
	if child == nil {
		return nil
	}
	if ref == nil {
		e.AppendChild(child)
		return nil
	}
	idx := e.indexOf(ref)
	if idx < 0 {
		return errNotChild
	}
	if frag, ok := child.(*Fragment); ok {
		kids := frag.take()
		for _, c := range kids {
			detach(c)
			c.setParent(e)
		}
		e.children = append(e.children[:idx], append(kids, e.children[idx:]...)...)
		return nil
	}
	detach(child)
	// Re-resolve: detaching may have shifted the reference index.
	idx = e.indexOf(ref)
	if idx < 0 {
		return errNotChild
	}
	child.setParent(e)
	e.children = append(e.children[:idx], append([]Node{child}, e.children[idx:]...)...)
	return nil
}

// ReplaceChild swaps old for child in place. Returns an error if old is
// not a child of e.
func (e *Element) ReplaceChild(child, old Node) error {
	idx := e.indexOf(old)
	if idx < 0 {
		return errNotChild
	}
	if frag, ok := child.(*Fragment); ok {
		old.setParent(nil)
		kids := frag.take()
		for _, c := range kids {
			detach(c)
			c.setParent(e)
		}
		e.children = append(e.children[:idx], append(kids, e.children[idx+1:]...)...)
		return nil
	}
	detach(child)
	idx = e.indexOf(old)
	if idx < 0 {
		return errNotChild
	}
	old.setParent(nil)
	child.setParent(e)
	e.children[idx] = child
	return nil
}

// RemoveChild removes child from e. Returns an error if child is not a
// child of e.
func (e *Element) RemoveChild(child Node) error {
	idx := e.indexOf(child)
	if idx < 0 {
		return errNotChild
	}
	child.setParent(nil)
	e.children = append(e.children[:idx], e.children[idx+1:]...)
	return nil
}

func (e *Element) indexOf(n Node) int {
	for i, c := range e.children {
		if c == n {
			return i
		}
	}
	return -1
}

// ChildNodes returns a copy of the live child list.
func (e *Element) ChildNodes() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// Children returns only the element children, in order. This is the
// "HTML children" view; it is always derived from the same list as
// ChildNodes, so the two can never disagree.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// FirstChild returns the first child node, or nil.
func (e *Element) FirstChild() Node {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// SetTextContent replaces the full child list with a single text node.
func (e *Element) SetTextContent(text string) {
	e.clearChildren()
	t := &Text{Data: text, parent: e}
	e.children = []Node{t}
}

// TextContent returns the concatenated text of all descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.collectText(&b)
	return b.String()
}

func (e *Element) collectText(b *strings.Builder) {
	for _, c := range e.children {
		switch n := c.(type) {
		case *Text:
			b.WriteString(n.Data)
		case *Element:
			n.collectText(b)
		}
	}
}

// SetInnerHTML replaces the full child list with verbatim HTML. The
// caller is responsible for the content being trusted.
func (e *Element) SetInnerHTML(html string) {
	e.clearChildren()
	e.children = []Node{&rawNode{html: html, parent: e}}
}

func (e *Element) clearChildren() {
	for _, c := range e.children {
		c.setParent(nil)
	}
	e.children = nil
}

// =============================================================================
// Attributes, classes, styles
// =============================================================================

// SetAttribute sets an attribute. The class and style attributes route to
// the class set and style map so the views stay consistent.
func (e *Element) SetAttribute(key, value string) {
	key = strings.ToLower(key)
	switch key {
	case "class":
		e.classes = nil
		for _, cls := range strings.Fields(value) {
			e.AddClass(cls)
		}
	case "style":
		e.styles = nil
		e.styleKey = nil
		for _, decl := range strings.Split(value, ";") {
			k, v, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			e.SetStyle(strings.TrimSpace(k), strings.TrimSpace(v))
		}
	default:
		if e.attrs == nil {
			e.attrs = make(map[string]string)
		}
		e.attrs[key] = value
	}
}

// GetAttribute returns an attribute value, materializing class and style.
func (e *Element) GetAttribute(key string) (string, bool) {
	key = strings.ToLower(key)
	switch key {
	case "class":
		if len(e.classes) == 0 {
			return "", false
		}
		return strings.Join(e.classes, " "), true
	case "style":
		if len(e.styleKey) == 0 {
			return "", false
		}
		return e.styleAttr(), true
	}
	v, ok := e.attrs[key]
	return v, ok
}

// RemoveAttribute removes an attribute.
func (e *Element) RemoveAttribute(key string) {
	key = strings.ToLower(key)
	switch key {
	case "class":
		e.classes = nil
	case "style":
		e.styles = nil
		e.styleKey = nil
	default:
		delete(e.attrs, key)
	}
}

// AddClass adds a class if not already present.
func (e *Element) AddClass(cls string) {
	if cls == "" || e.HasClass(cls) {
		return
	}
	e.classes = append(e.classes, cls)
}

// RemoveClass removes a class.
func (e *Element) RemoveClass(cls string) {
	for i, c := range e.classes {
		if c == cls {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			return
		}
	}
}

// HasClass reports whether the class is present.
func (e *Element) HasClass(cls string) bool {
	for _, c := range e.classes {
		if c == cls {
			return true
		}
	}
	return false
}

// ClassName returns the space-joined class list.
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

// SetStyle sets an inline style property, preserving insertion order.
func (e *Element) SetStyle(prop, value string) {
	if prop == "" {
		return
	}
	if e.styles == nil {
		e.styles = make(map[string]string)
	}
	if _, ok := e.styles[prop]; !ok {
		e.styleKey = append(e.styleKey, prop)
	}
	e.styles[prop] = value
}

// Style returns an inline style property value.
func (e *Element) Style(prop string) string {
	return e.styles[prop]
}

// RemoveStyle removes an inline style property.
func (e *Element) RemoveStyle(prop string) {
	if _, ok := e.styles[prop]; !ok {
		return
	}
	delete(e.styles, prop)
	for i, k := range e.styleKey {
		if k == prop {
			e.styleKey = append(e.styleKey[:i], e.styleKey[i+1:]...)
			return
		}
	}
}

func (e *Element) styleAttr() string {
	var b strings.Builder
	for i, k := range e.styleKey {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.styles[k])
	}
	return b.String()
}

// attrNames returns plain attribute names sorted for deterministic output.
func (e *Element) attrNames() []string {
	names := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
