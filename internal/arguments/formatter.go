package arguments

import "strings"

const (
	argumentSeparatorConstant = " "
	quoteCharacterConstant    = "\""
	quoteRuneConstant         = '"'
)

// Quote wraps the token in double quotes without escaping its contents.
func Quote(token string) string {
	return quoteCharacterConstant + token + quoteCharacterConstant
}

// Combine joins the tokens with single spaces, quoting each token when requested.
func Combine(items []string, quote bool) string {
	var builder strings.Builder
	for _, item := range items {
		if builder.Len() > 0 {
			builder.WriteString(argumentSeparatorConstant)
		}
		if quote {
			builder.WriteString(Quote(item))
			continue
		}
		builder.WriteString(item)
	}
	return builder.String()
}

// BuildArgumentString appends the formatted arguments to the subcommand.
func BuildArgumentString(subCommand string, arguments []string, quote bool) string {
	if len(arguments) == 0 {
		return subCommand
	}

	formattedArguments := Combine(arguments, quote)
	if len(subCommand) == 0 {
		return formattedArguments
	}

	return subCommand + argumentSeparatorConstant + formattedArguments
}

// SplitArgumentLine splits a rendered argument line into an argument vector.
// Whitespace separates fields unless it appears between double quotes; the
// quotes themselves are removed. A quoted empty token yields an empty field.
func SplitArgumentLine(line string) []string {
	fields := make([]string, 0)

	var current strings.Builder
	insideQuotes := false
	fieldStarted := false

	for _, character := range line {
		switch {
		case character == quoteRuneConstant:
			insideQuotes = !insideQuotes
			fieldStarted = true
		case !insideQuotes && isArgumentWhitespace(character):
			if fieldStarted {
				fields = append(fields, current.String())
				current.Reset()
				fieldStarted = false
			}
		default:
			current.WriteRune(character)
			fieldStarted = true
		}
	}

	if fieldStarted {
		fields = append(fields, current.String())
	}

	return fields
}

func isArgumentWhitespace(character rune) bool {
	return character == ' ' || character == '\t' || character == '\n' || character == '\r'
}
