// Package execshell launches external processes and classifies their outcome.
//
// OSProcessLauncher runs one command per call with redirected output streams,
// drains standard output and standard error line by line into independent
// accumulators, and enforces a timeout by forcibly terminating the process.
// ShellExecutor decorates any ProcessLauncher with zap logging and lifecycle
// notifications delivered to CommandEventObserver implementations.
package execshell
