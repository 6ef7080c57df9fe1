// Package ssr implements server-side rendering of component trees.
//
// The heart of the package is the two-pass render: the app factory runs
// once so components can register their asynchronous data queries, every
// query is awaited under its timeout with settle-all semantics, and the
// factory runs a second time with resolved data visible so the emitted
// HTML carries real content instead of loading placeholders wherever the
// data arrived in time.
//
// Component code reaches the per-request state (query registration, error
// collection, current URL) through an ambient RequestContext rather than
// an explicitly threaded parameter, because the component contract assumes
// browser-style globals. Two concurrent renders would corrupt that shared
// state, so full renders are serialized through a single package-level
// mutex; see Renderer. This trades request-level parallelism for
// correctness and is a documented scaling limit of this path.
package ssr
