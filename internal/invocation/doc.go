// Package invocation is the public entry point for running external commands.
//
// Invoker offers two explicit result shapes: RunBlocking returns the captured
// output directly, while RunAsync returns a DeferredResult immediately and
// completes it exactly once from a separate goroutine. Discarding a
// DeferredResult does not stop the process; the request timeout still applies.
// The package also provides the cobra command that exposes invocations on the
// command line and renders their outcome as text or YAML.
package invocation
