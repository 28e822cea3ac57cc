package execshell

import (
	"strings"
	"time"

	"github.com/temirov/cmdrun/internal/arguments"
)

const (
	// DefaultTimeout bounds invocations that do not specify a timeout.
	DefaultTimeout = 30 * time.Second

	commandLabelSeparatorConstant = " "
)

// InvocationRequest describes a single external command invocation.
type InvocationRequest struct {
	Command        string
	SubCommand     string
	Arguments      []string
	Timeout        time.Duration
	QuoteArguments bool
}

// NewInvocationRequest builds a request with the default timeout and quoted arguments.
func NewInvocationRequest(command string, subCommand string, argumentTokens []string) InvocationRequest {
	return InvocationRequest{
		Command:        command,
		SubCommand:     subCommand,
		Arguments:      append([]string(nil), argumentTokens...),
		Timeout:        DefaultTimeout,
		QuoteArguments: true,
	}
}

// WithTimeout returns a copy of the request bounded by the provided timeout.
func (request InvocationRequest) WithTimeout(timeout time.Duration) InvocationRequest {
	request.Timeout = timeout
	return request
}

// WithQuoting returns a copy of the request with argument quoting toggled.
func (request InvocationRequest) WithQuoting(quoteArguments bool) InvocationRequest {
	request.QuoteArguments = quoteArguments
	return request
}

// EffectiveTimeout reports the timeout applied to the invocation.
func (request InvocationRequest) EffectiveTimeout() time.Duration {
	if request.Timeout <= 0 {
		return DefaultTimeout
	}
	return request.Timeout
}

// ArgumentLine renders the subcommand and arguments as a single line.
func (request InvocationRequest) ArgumentLine() string {
	return arguments.BuildArgumentString(request.SubCommand, request.Arguments, request.QuoteArguments)
}

// ArgumentVector splits the rendered argument line into process arguments.
func (request InvocationRequest) ArgumentVector() []string {
	return arguments.SplitArgumentLine(request.ArgumentLine())
}

// Label renders the command and its argument line for messages.
func (request InvocationRequest) Label() string {
	argumentLine := request.ArgumentLine()
	if len(strings.TrimSpace(argumentLine)) == 0 {
		return request.Command
	}
	return request.Command + commandLabelSeparatorConstant + argumentLine
}
