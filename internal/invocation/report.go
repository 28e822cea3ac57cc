package invocation

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/temirov/cmdrun/internal/execshell"
)

const yamlIndentationConstant = 2

// OutputFormat enumerates supported renderings of an invocation outcome.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = "text"
	OutputFormatYAML OutputFormat = "yaml"
)

// InvocationMode identifies the result shape used for an invocation.
type InvocationMode string

// Supported invocation modes.
const (
	InvocationModeBlocking InvocationMode = "blocking"
	InvocationModeAsync    InvocationMode = "async"
)

// InvocationReport summarizes an invocation for machine-readable output.
type InvocationReport struct {
	Command     string   `yaml:"command"`
	SubCommand  string   `yaml:"sub_command,omitempty"`
	Arguments   []string `yaml:"arguments,omitempty"`
	Mode        string   `yaml:"mode"`
	Timeout     string   `yaml:"timeout"`
	Succeeded   bool     `yaml:"succeeded"`
	Output      string   `yaml:"output,omitempty"`
	FailureKind string   `yaml:"failure_kind,omitempty"`
	ExitCode    *int     `yaml:"exit_code,omitempty"`
	Detail      string   `yaml:"detail,omitempty"`
}

// NewInvocationReport describes the outcome of the request executed in the given mode.
// Timeouts carry no detail; non-zero exits carry the captured standard error.
func NewInvocationReport(request execshell.InvocationRequest, mode InvocationMode, outcome execshell.InvocationOutcome) InvocationReport {
	report := InvocationReport{
		Command:    request.Command,
		SubCommand: request.SubCommand,
		Arguments:  append([]string(nil), request.Arguments...),
		Mode:       string(mode),
		Timeout:    request.EffectiveTimeout().String(),
		Succeeded:  outcome.Succeeded(),
		Output:     outcome.Output,
	}
	if outcome.Succeeded() {
		return report
	}

	report.FailureKind = string(outcome.Kind())

	var failedError execshell.CommandFailedError
	var executionError execshell.CommandExecutionError
	switch {
	case errors.Is(outcome.Failure, execshell.ErrCommandTimedOut):
	case errors.As(outcome.Failure, &failedError):
		exitCode := failedError.ExitCode
		report.ExitCode = &exitCode
		report.Detail = failedError.StandardError
	case errors.As(outcome.Failure, &executionError):
		if executionError.Cause != nil {
			report.Detail = executionError.Cause.Error()
		}
	default:
		report.Detail = outcome.Failure.Error()
	}

	return report
}

// RenderOutcome writes the outcome to the writer using the requested format.
// The text format writes the captured standard output verbatim and nothing on failure.
func RenderOutcome(writer io.Writer, format OutputFormat, report InvocationReport) error {
	if format != OutputFormatYAML {
		if !report.Succeeded || len(report.Output) == 0 {
			return nil
		}
		_, writeError := io.WriteString(writer, report.Output)
		return writeError
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentationConstant)
	if encodeError := encoder.Encode(report); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}
