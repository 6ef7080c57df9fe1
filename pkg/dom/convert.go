package dom

import (
	"github.com/verso-dev/verso/pkg/vdom"
)

// ToVNode converts a shim node into a virtual node tree. The conversion
// is recursive and read-only; the shim tree is left untouched.
//
// Comments convert to raw "<!--text-->" nodes so hydration can find them
// as positional anchors. Fragments convert to fragment nodes whose
// children were already spliced semantics-wise (a fragment is only ever
// converted when it was never attached).
func ToVNode(n Node) *vdom.VNode {
	switch node := n.(type) {
	case *Element:
		return elementToVNode(node)
	case *Text:
		return vdom.Text(node.Data)
	case *Comment:
		return vdom.Comment(node.Data)
	case *Fragment:
		frag := &vdom.VNode{Kind: vdom.KindFragment}
		for _, c := range node.children {
			if v := ToVNode(c); v != nil {
				frag.Children = append(frag.Children, v)
			}
		}
		return frag
	case *rawNode:
		return vdom.Raw(node.html)
	default:
		return nil
	}
}

func elementToVNode(e *Element) *vdom.VNode {
	v := &vdom.VNode{
		Kind: vdom.KindElement,
		Tag:  e.TagName,
	}
	for _, k := range e.attrNames() {
		v.SetAttr(k, e.attrs[k])
	}
	if cls := e.ClassName(); cls != "" {
		v.SetAttr("class", cls)
	}
	if style := e.styleAttr(); style != "" {
		v.SetAttr("style", style)
	}
	for _, c := range e.children {
		if child := ToVNode(c); child != nil {
			v.Children = append(v.Children, child)
		}
	}
	return v
}
