package execshell

import (
	"bufio"
	"io"
	"strings"
)

const (
	lineTerminatorConstant      = "\n"
	carriageReturnConstant      = "\r"
	lineDelimiterByteConstant   = '\n'
	streamReaderBufferSizeBytes = 64 * 1024
)

// streamAccumulator collects the lines of one output stream. Only the draining
// goroutine writes to the builder, and readers wait on done before reading it.
type streamAccumulator struct {
	builder strings.Builder
	done    chan struct{}
}

func newStreamAccumulator() *streamAccumulator {
	return &streamAccumulator{done: make(chan struct{})}
}

// drain reads the stream until it closes, appending a terminator after every line.
func (accumulator *streamAccumulator) drain(stream io.Reader) {
	defer close(accumulator.done)

	bufferedReader := bufio.NewReaderSize(stream, streamReaderBufferSizeBytes)
	for {
		line, readError := bufferedReader.ReadString(lineDelimiterByteConstant)
		if len(line) > 0 {
			accumulator.appendLine(line)
		}
		if readError != nil {
			return
		}
	}
}

func (accumulator *streamAccumulator) appendLine(line string) {
	trimmedLine := strings.TrimSuffix(line, lineTerminatorConstant)
	trimmedLine = strings.TrimSuffix(trimmedLine, carriageReturnConstant)
	accumulator.builder.WriteString(trimmedLine)
	accumulator.builder.WriteString(lineTerminatorConstant)
}

// wait blocks until the stream has been drained.
func (accumulator *streamAccumulator) wait() {
	<-accumulator.done
}

// String returns the accumulated lines. Call only after wait returns.
func (accumulator *streamAccumulator) String() string {
	return accumulator.builder.String()
}
