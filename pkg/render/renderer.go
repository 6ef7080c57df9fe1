package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/verso-dev/verso/pkg/vdom"
)

// Renderer serializes a VNode tree to HTML synchronously.
//
// Boundary nodes render their resolved subtree when the future has
// already settled successfully, otherwise their fallback; nothing is
// awaited. The streaming path lives in StreamRenderer.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Serialize renders a VNode tree to an HTML string.
func (r *Renderer) Serialize(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.WriteNode(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteNode writes a VNode tree to the given writer.
func (r *Renderer) WriteNode(w io.Writer, node *vdom.VNode) error {
	return r.writeNode(w, node, false)
}

// writeNode dispatches on node kind. rawText marks text-in-script/style
// position where escaping is skipped.
func (r *Renderer) writeNode(w io.Writer, node *vdom.VNode, rawText bool) error {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case vdom.KindElement:
		return r.writeElement(w, node)
	case vdom.KindText:
		if rawText {
			_, err := io.WriteString(w, node.Text)
			return err
		}
		_, err := io.WriteString(w, EscapeText(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.writeNode(w, child, rawText); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	case vdom.KindBoundary:
		return r.writeBoundary(w, node)
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
}

func (r *Renderer) writeElement(w io.Writer, node *vdom.VNode) error {
	if _, err := io.WriteString(w, "<"+node.Tag); err != nil {
		return err
	}
	if err := r.writeAttrs(w, node); err != nil {
		return err
	}
	if isVoidElement(node.Tag) {
		_, err := io.WriteString(w, ">")
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	raw := isRawTextElement(node.Tag)
	for _, child := range node.Children {
		if err := r.writeNode(w, child, raw); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+node.Tag+">")
	return err
}

// writeAttrs emits attributes sorted by name for deterministic output.
func (r *Renderer) writeAttrs(w io.Writer, node *vdom.VNode) error {
	if len(node.Attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(node.Attrs))
	for k := range node.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, k, EscapeAttr(node.Attrs[k])); err != nil {
			return err
		}
	}
	return nil
}

// writeBoundary renders a boundary without waiting: the settled subtree
// if available, the fallback otherwise.
func (r *Renderer) writeBoundary(w io.Writer, node *vdom.VNode) error {
	if node.Future != nil && node.Future.Settled() {
		if resolved, err := node.Future.Result(); err == nil && resolved != nil {
			return r.writeNode(w, resolved, false)
		}
	}
	return r.writeNode(w, node.Fallback, false)
}
