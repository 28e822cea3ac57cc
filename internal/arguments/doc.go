// Package arguments renders argument tokens into command lines.
//
// Tokens are treated as opaque: Combine optionally wraps each token in double
// quotes but never escapes quotes already present, and BuildArgumentString
// prefixes the formatted block with a subcommand. SplitArgumentLine turns the
// rendered line back into the argument vector handed to os/exec.
package arguments
