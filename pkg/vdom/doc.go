// Package vdom defines the virtual DOM node types shared by the renderer,
// the node shim, and the streaming serializer.
//
// A VNode tree is the universal currency of a render: component code (or
// the dom shim's conversion) produces a tree, and the render package turns
// it into HTML. Trees are built fresh per render pass and are never mutated
// by the renderer.
//
// The Boundary kind models a suspense boundary: a fallback subtree paired
// with a Future of the eventual real subtree, enabling out-of-order
// streaming delivery.
package vdom
