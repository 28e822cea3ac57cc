package invocation

import (
	"strings"
	"time"

	"github.com/temirov/cmdrun/internal/execshell"
	"github.com/temirov/cmdrun/internal/settings"
)

const (
	timeoutConfigurationKeyConstant        = "timeout"
	quoteArgumentsConfigurationKeyConstant = "quote_arguments"
	outputFormatConfigurationKeyConstant   = "output_format"
	configurationKeySeparatorConstant      = "."
	awsCommandAliasConstant                = "aws"
)

// CommandConfiguration captures configuration values for the run command.
type CommandConfiguration struct {
	Timeout        time.Duration                             `mapstructure:"timeout"`
	QuoteArguments bool                                      `mapstructure:"quote_arguments"`
	OutputFormat   string                                    `mapstructure:"output_format"`
	Commands       map[string]settings.CommandPathDefinition `mapstructure:"commands"`
}

// DefaultCommandConfiguration provides baseline configuration values for the run command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Timeout:        execshell.DefaultTimeout,
		QuoteArguments: true,
		OutputFormat:   string(OutputFormatText),
		Commands: map[string]settings.CommandPathDefinition{
			awsCommandAliasConstant: {
				EnvironmentVariable: settings.AWSCommandPath.EnvironmentVariable(),
				DefaultPath:         settings.AWSCommandPath.DefaultPath(),
			},
		},
	}
}

// DefaultConfigurationValues exposes scalar defaults keyed beneath the provided configuration prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		joinConfigurationKey(configurationPrefix, timeoutConfigurationKeyConstant):        defaults.Timeout.String(),
		joinConfigurationKey(configurationPrefix, quoteArgumentsConfigurationKeyConstant): defaults.QuoteArguments,
		joinConfigurationKey(configurationPrefix, outputFormatConfigurationKeyConstant):   defaults.OutputFormat,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	if sanitized.Timeout <= 0 {
		sanitized.Timeout = execshell.DefaultTimeout
	}
	sanitized.OutputFormat = strings.ToLower(strings.TrimSpace(configuration.OutputFormat))
	if len(sanitized.OutputFormat) == 0 {
		sanitized.OutputFormat = string(OutputFormatText)
	}
	return sanitized
}

func joinConfigurationKey(configurationPrefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(configurationPrefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
