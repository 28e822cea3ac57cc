// Package ui formats command lifecycle events for people reading the console.
//
// Structured diagnostics stay in the zap logger; the console event logger adds
// short lines such as "Running ..." and "... timed out" when console logging
// is selected.
package ui
