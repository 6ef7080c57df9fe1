// Package dom is a minimal in-memory stand-in for the browser document.
//
// Component code written against a DOM-shaped API (createElement,
// appendChild, class and style accessors) runs on the server against these
// types instead of a real document. The shim guarantees that a node's
// parent pointer and its parent's child list stay consistent under every
// mutation, and that document fragments splice their children into the
// real parent on attach.
//
// A shim tree converts to a vdom.VNode tree with ToVNode; Comment nodes
// become raw "<!--...-->" anchors that client-side hydration can locate.
package dom
