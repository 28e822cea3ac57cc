package invocation

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/cmdrun/internal/execshell"
	"github.com/temirov/cmdrun/internal/settings"
	"github.com/temirov/cmdrun/internal/ui"
	"github.com/temirov/cmdrun/internal/utils"
	"github.com/temirov/cmdrun/internal/utils/flags"
)

const (
	commandUseConstant                    = "run <command> [subcommand] [arguments...]"
	commandShortDescriptionConstant       = "Run an external command and print its captured output"
	commandLongDescriptionConstant        = "run launches the command without a shell, waits for it within the timeout, and prints its standard output once it exits. The command may be a path or a configured alias. Flags placed after the command are passed to it; use -- to pass arguments starting with a dash."
	commandExecutionErrorTemplateConstant = "invocation failed: %w"
	flagTimeoutNameConstant               = "timeout"
	flagTimeoutDescriptionConstant        = "Maximum time to wait before the process is killed"
	flagQuoteNameConstant                 = "quote"
	flagQuoteDescriptionConstant          = "Wrap each argument in double quotes (use --quote=no to disable)"
	flagAsyncNameConstant                 = "async"
	flagAsyncDescriptionConstant          = "Run through the deferred result handle instead of blocking directly"
	flagFormatNameConstant                = "format"
	flagFormatDescriptionConstant         = "Render the captured output as text or a YAML report"
	minimumPositionalArgumentsConstant    = 1
	subCommandPositionConstant            = 1
	argumentsPositionConstant             = 2
)

var supportedOutputFormats = []string{string(OutputFormatText), string(OutputFormatYAML)}

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the run command configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the Cobra command that runs external commands.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	Launcher                     execshell.ProcessLauncher
}

// RunOptions captures the resolved inputs of a single run invocation.
type RunOptions struct {
	Request      execshell.InvocationRequest
	Async        bool
	OutputFormat OutputFormat
}

type commandFlagValues struct {
	timeout        time.Duration
	quoteArguments bool
	async          bool
	outputFormat   string
}

// Build constructs the run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	flagValues := &commandFlagValues{}

	command := &cobra.Command{
		Use:          commandUseConstant,
		Short:        commandShortDescriptionConstant,
		Long:         commandLongDescriptionConstant,
		Args:         cobra.MinimumNArgs(minimumPositionalArgumentsConstant),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, flagValues)
		},
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().SetInterspersed(false)
	command.Flags().DurationVar(&flagValues.timeout, flagTimeoutNameConstant, defaults.Timeout, flagTimeoutDescriptionConstant)
	flags.AddToggleFlag(command.Flags(), &flagValues.quoteArguments, flagQuoteNameConstant, defaults.QuoteArguments, flagQuoteDescriptionConstant)
	flags.AddToggleFlag(command.Flags(), &flagValues.async, flagAsyncNameConstant, false, flagAsyncDescriptionConstant)
	flags.AddChoiceFlag(command.Flags(), &flagValues.outputFormat, flagFormatNameConstant, defaults.OutputFormat, supportedOutputFormats, flagFormatDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, flagValues *commandFlagValues) error {
	options := builder.parseOptions(command, arguments, flagValues)

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	invoker, invokerError := NewInvoker(executor)
	if invokerError != nil {
		return invokerError
	}

	mode := InvocationModeBlocking
	var outcome execshell.InvocationOutcome
	if options.Async {
		mode = InvocationModeAsync
		outcome = execshell.NewInvocationOutcome(invoker.RunAsync(options.Request).WaitContext(command.Context()))
	} else {
		outcome = execshell.NewInvocationOutcome(invoker.RunBlocking(options.Request))
	}

	report := NewInvocationReport(options.Request, mode, outcome)
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	if renderError := RenderOutcome(outputWriter, options.OutputFormat, report); renderError != nil {
		return renderError
	}

	if outcome.Failure != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, outcome.Failure)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string, flagValues *commandFlagValues) RunOptions {
	configuration := builder.resolveConfiguration()

	timeout := configuration.Timeout
	if command.Flags().Changed(flagTimeoutNameConstant) {
		timeout = flagValues.timeout
	}

	quoteArguments := configuration.QuoteArguments
	if command.Flags().Changed(flagQuoteNameConstant) {
		quoteArguments = flagValues.quoteArguments
	}

	outputFormat := configuration.OutputFormat
	if command.Flags().Changed(flagFormatNameConstant) {
		outputFormat = flagValues.outputFormat
	}

	registry := settings.NewCommandPathRegistry(configuration.Commands)
	commandPath := registry.ResolveOrPassthrough(arguments[0])

	subCommand := ""
	if len(arguments) > subCommandPositionConstant {
		subCommand = arguments[subCommandPositionConstant]
	}

	var argumentTokens []string
	if len(arguments) > argumentsPositionConstant {
		argumentTokens = arguments[argumentsPositionConstant:]
	}

	request := execshell.NewInvocationRequest(commandPath, subCommand, argumentTokens).
		WithTimeout(timeout).
		WithQuoting(quoteArguments)

	return RunOptions{
		Request:      request,
		Async:        flagValues.async,
		OutputFormat: OutputFormat(outputFormat),
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (CommandExecutor, error) {
	launcher := builder.Launcher
	if launcher == nil {
		launcher = execshell.NewOSProcessLauncher()
	}

	var eventObserver execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		eventObserver = ui.NewConsoleCommandEventLogger(logger)
	}

	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, launcher, eventObserver)
	if creationError != nil {
		return nil, errors.Join(ErrExecutorNotConfigured, creationError)
	}

	return shellExecutor, nil
}
