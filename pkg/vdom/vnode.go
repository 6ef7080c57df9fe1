package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Raw HTML, emitted verbatim (dangerous)
	KindBoundary              // Suspense boundary: fallback + future subtree
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	case KindBoundary:
		return "Boundary"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node. Which fields are meaningful depends on
// Kind; the renderer dispatches exhaustively on it.
type VNode struct {
	Kind     VKind             // Node type
	Tag      string            // Element tag name (e.g., "div")
	Attrs    map[string]string // Element attributes
	Children []*VNode          // Child nodes (Element, Fragment)
	Key      string            // Instance identity for hydration
	Text     string            // For KindText and KindRaw
	Fallback *VNode            // For KindBoundary: shown until the future settles
	Future   *Future           // For KindBoundary: eventual real subtree
}

// SetAttr sets an attribute, allocating the map on first use.
// Returns the node for chaining during tree construction.
func (v *VNode) SetAttr(key, value string) *VNode {
	if v.Attrs == nil {
		v.Attrs = make(map[string]string)
	}
	v.Attrs[key] = value
	return v
}

// Attr returns the attribute value and whether it is set.
func (v *VNode) Attr(key string) (string, bool) {
	val, ok := v.Attrs[key]
	return val, ok
}

// Walk visits the node and its descendants depth-first. It does not
// descend into boundary fallbacks or futures; those belong to the
// serializer that decides which side of the boundary to render.
func (v *VNode) Walk(visit func(*VNode) bool) {
	if v == nil || !visit(v) {
		return
	}
	for _, child := range v.Children {
		child.Walk(visit)
	}
}
