// Package render serializes vdom trees to HTML.
//
// Renderer produces a complete string or writes to an io.Writer; it is the
// deterministic, synchronous path. StreamRenderer adds the out-of-order
// delivery protocol for suspense boundaries: pending boundaries emit a
// placeholder <div id="v-slot-N"> inline, and as each boundary's future
// settles a <template id="v-tmpl-N"> plus inline swap script is appended
// to the stream, independent of registration order.
package render
