package vdom

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Hydration marker attributes. The client runtime queries for these to
// re-attach behavior to server-rendered markup. Purely static subtrees
// carry none of them.
const (
	AttrComponentID = "data-v-id"
	AttrInstanceKey = "data-v-key"
)

var islandJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Island marks an element as an interactive component instance. The
// element receives data-v-id (component name) and data-v-key (instance
// identity). When props is non-nil a sibling script tag of type
// application/json carries the serialized props for the client.
//
// Returns a fragment when a props script is emitted, otherwise the
// element itself.
func Island(name, key string, props any, elem *VNode) *VNode {
	if elem == nil || elem.Kind != KindElement {
		return elem
	}
	elem.SetAttr(AttrComponentID, name)
	elem.SetAttr(AttrInstanceKey, key)
	elem.Key = key

	if props == nil {
		return elem
	}
	blob, err := islandJSON.MarshalToString(props)
	if err != nil {
		// Unserializable props degrade to a marker-only island; the
		// client falls back to fetching its own state.
		return elem
	}
	// Escape "<" so a props value can never terminate the script
	// element or open a comment.
	blob = strings.ReplaceAll(blob, "<", "\\u003c")

	script := El("script",
		Attr{Key: "type", Value: "application/json"},
		Attr{Key: AttrInstanceKey, Value: key},
		Raw(blob),
	)
	return Fragment(elem, script)
}

// IsIsland reports whether the node carries hydration markers.
func IsIsland(v *VNode) bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	_, ok := v.Attrs[AttrComponentID]
	return ok
}

// CollectIslands returns all island nodes in the tree keyed by instance
// identity. Unlike Walk it descends into boundary fallbacks: a fallback
// ships in the initial HTML, so islands inside it must hydrate. Futures
// are still skipped; their subtrees arrive as swap chunks and the client
// re-scans after each swap.
func CollectIslands(root *VNode) map[string]*VNode {
	found := make(map[string]*VNode)
	collectIslands(root, found)
	return found
}

func collectIslands(v *VNode, found map[string]*VNode) {
	if v == nil {
		return
	}
	if IsIsland(v) {
		if key, ok := v.Attrs[AttrInstanceKey]; ok {
			found[key] = v
		}
	}
	for _, child := range v.Children {
		collectIslands(child, found)
	}
	if v.Kind == KindBoundary {
		collectIslands(v.Fallback, found)
	}
}
