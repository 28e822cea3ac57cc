// Package settings resolves external command paths from the environment.
//
// A CommandPathSetting reads its environment variable once, falls back to a
// static default when the variable is unset or empty, and caches the result
// for the lifetime of the process. CommandPathRegistry maps configured command
// aliases onto such settings.
package settings
