package el

import "github.com/verso-dev/verso/pkg/vdom"

// Text creates an escaped text node.
func Text(s string) *VNode { return vdom.Text(s) }

// Textf creates a formatted escaped text node.
func Textf(format string, args ...any) *VNode { return vdom.Textf(format, args...) }

// Raw creates an unescaped HTML node. The caller vouches for the content.
func Raw(html string) *VNode { return vdom.Raw(html) }

// Fragment groups children without a wrapper element.
func Fragment(children ...*VNode) *VNode { return vdom.Fragment(children...) }

// If returns node when cond is true, nil otherwise.
func If(cond bool, node *VNode) *VNode { return vdom.If(cond, node) }

// IfElse returns then when cond is true, otherwise els.
func IfElse(cond bool, then, els *VNode) *VNode { return vdom.IfElse(cond, then, els) }

// Map renders one node per item.
func Map[T any](items []T, fn func(T) *VNode) []*VNode { return vdom.Map(items, fn) }

// Boundary marks a subtree whose content arrives asynchronously; fallback
// renders until the future settles.
func Boundary(fallback *VNode, future *vdom.Future) *VNode {
	return vdom.Boundary(fallback, future)
}
