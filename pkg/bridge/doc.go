// Package bridge carries resolved query data from the server to the
// client: JSON serialization hardened against script-context breakout, an
// inline bootstrap that defines the client-side push function, per-chunk
// data scripts, and a Server-Sent-Events writer used for navigation
// prefetch responses.
package bridge
