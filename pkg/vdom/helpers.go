package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Comment creates a raw node holding an HTML comment. Client-side
// hydration uses comments as positional anchors.
func Comment(text string) *VNode {
	return Raw("<!--" + text + "-->")
}

// Attr is a key/value attribute argument for El.
type Attr struct {
	Key   string
	Value string
}

// Class is shorthand for the class attribute.
func Class(value string) Attr { return Attr{Key: "class", Value: value} }

// ID is shorthand for the id attribute.
func ID(value string) Attr { return Attr{Key: "id", Value: value} }

// El creates an element node. Arguments may be Attr values, *VNode
// children, plain strings (converted to text nodes), []*VNode slices,
// or nil (skipped).
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			node.SetAttr(v.Key, v.Value)
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		default:
			node.Children = append(node.Children, Textf("%v", v))
		}
	}
	return node
}

// Fragment groups children without a wrapper element.
func Fragment(children ...*VNode) *VNode {
	node := &VNode{Kind: KindFragment}
	for _, c := range children {
		if c != nil {
			node.Children = append(node.Children, c)
		}
	}
	return node
}

// Boundary creates a suspense boundary node. The fallback is rendered
// inline; the future's subtree replaces it once settled (streamed
// out-of-order when rendering to a stream).
func Boundary(fallback *VNode, future *Future) *VNode {
	return &VNode{
		Kind:     KindBoundary,
		Fallback: fallback,
		Future:   future,
	}
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Map renders a node per item.
func Map[T any](items []T, fn func(T) *VNode) []*VNode {
	nodes := make([]*VNode, 0, len(items))
	for _, item := range items {
		if n := fn(item); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// panicError wraps a recovered panic value as an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
