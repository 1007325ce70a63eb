package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing to path. The TUI owns stdout, so an empty
// path discards output instead of falling back to the terminal.
func New(path string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: file, NoColor: true}).With().Timestamp().Logger()
	return l, file, nil
}
