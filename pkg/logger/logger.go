package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the part of logrus the binaries and handlers use.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
	WithFields(fields logrus.Fields) *logrus.Entry
}

// New returns a logrus logger writing timestamped text lines to stderr at
// the named level ("debug", "info", ...).
func New(level string) (*logrus.Logger, error) {
	return NewWithOutput(os.Stderr, level)
}

// NewWithOutput is New with a custom destination.
func NewWithOutput(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(lvl)
	return l, nil
}
