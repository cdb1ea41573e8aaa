// Package logging builds the zerolog logger shared by the CLI, the studio
// server, and the MCP server.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level string
	// Console forces the human-readable writer. When nil, it is chosen
	// based on whether Writer is a terminal.
	Console *bool
	Writer  io.Writer
}

// New creates a configured logger. Output defaults to stderr so that stdout
// stays free for command output and the MCP stdio protocol.
func New(opts Options) (zerolog.Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), err
		}
		level = parsed
	}

	console := isTerminal(writer)
	if opts.Console != nil {
		console = *opts.Console
	}

	var output io.Writer = writer
	if console {
		output = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
