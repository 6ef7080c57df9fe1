package bridge

import (
	"fmt"

	"github.com/verso-dev/verso/pkg/render"
)

// PushFunction is the name of the client-side function that receives
// streamed data chunks.
const PushFunction = "__PUSH__"

// DataEvent is the DOM event fired on window for every pushed chunk; the
// hydration layer subscribes to it.
const DataEvent = "verso:data"

// BootstrapScript returns the inline script that defines the client-side
// push buffer and function. Chunks arriving before hydration are replayed
// from the buffer; chunks arriving after fire the data event. The nonce,
// when non-empty, is emitted as an escaped attribute.
func BootstrapScript(nonce string) string {
	return fmt.Sprintf(
		"<script%s>window.__PUSH_BUF__=window.__PUSH_BUF__||[];"+
			"window.%s=function(k,d){window.__PUSH_BUF__.push({key:k,data:d});"+
			"window.dispatchEvent(new CustomEvent(%q,{detail:{key:k,data:d}}));};</script>",
		nonceAttr(nonce), PushFunction, DataEvent,
	)
}

// DataChunk returns one inline script that pushes a resolved {key, data}
// pair to the client. Both key and value go through SafeSerialize.
func DataChunk(key string, value any, nonce string) (string, error) {
	k, err := SafeSerialize(key)
	if err != nil {
		return "", fmt.Errorf("bridge: serialize key %q: %w", key, err)
	}
	v, err := SafeSerialize(value)
	if err != nil {
		return "", fmt.Errorf("bridge: serialize data for %q: %w", key, err)
	}
	return fmt.Sprintf("<script%s>window.%s(%s,%s);</script>",
		nonceAttr(nonce), PushFunction, k, v), nil
}

func nonceAttr(nonce string) string {
	if nonce == "" {
		return ""
	}
	return fmt.Sprintf(` nonce="%s"`, render.EscapeAttr(nonce))
}
