// Package cli constructs the cmdrun command-line interface, wiring the Cobra
// command hierarchy, the layered configuration loader, and structured logging
// around the invocation run command.
package cli
