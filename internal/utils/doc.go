// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses the Viper-backed ConfigurationLoader, the zap LoggerFactory, and
// FlushingWriter used to surface command output immediately.
package utils
