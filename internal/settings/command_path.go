package settings

import (
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const (
	commandPathKeyConstant           = "command_path"
	awsCommandEnvironmentKeyConstant = "COMMAND_AWS"
	awsCommandDefaultPathConstant    = "/usr/local/bin/aws"
)

// AWSCommandPath resolves the AWS CLI location from COMMAND_AWS.
var AWSCommandPath = NewCommandPathSetting(awsCommandEnvironmentKeyConstant, awsCommandDefaultPathConstant)

// CommandPathSetting lazily resolves a command path from an environment variable with a static fallback.
type CommandPathSetting struct {
	environmentVariable string
	defaultPath         string
	resolveOnce         sync.Once
	resolvedPath        string
}

// NewCommandPathSetting constructs a setting bound to the environment variable and fallback path.
func NewCommandPathSetting(environmentVariable string, defaultPath string) *CommandPathSetting {
	return &CommandPathSetting{
		environmentVariable: strings.TrimSpace(environmentVariable),
		defaultPath:         defaultPath,
	}
}

// EnvironmentVariable reports the environment variable consulted by the setting.
func (setting *CommandPathSetting) EnvironmentVariable() string {
	return setting.environmentVariable
}

// DefaultPath reports the fallback path used when the environment variable is unset or empty.
func (setting *CommandPathSetting) DefaultPath() string {
	return setting.defaultPath
}

// Path returns the resolved command path, reading the environment only on first use.
func (setting *CommandPathSetting) Path() string {
	setting.resolveOnce.Do(func() {
		setting.resolvedPath = setting.resolve()
	})
	return setting.resolvedPath
}

func (setting *CommandPathSetting) resolve() string {
	if len(setting.environmentVariable) == 0 {
		return setting.defaultPath
	}

	environmentReader := viper.New()
	environmentReader.SetDefault(commandPathKeyConstant, setting.defaultPath)
	if bindError := environmentReader.BindEnv(commandPathKeyConstant, setting.environmentVariable); bindError != nil {
		return setting.defaultPath
	}

	resolvedPath := environmentReader.GetString(commandPathKeyConstant)
	if len(strings.TrimSpace(resolvedPath)) == 0 {
		return setting.defaultPath
	}

	return resolvedPath
}
