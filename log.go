package compose

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	debug bool
	log   logrus.FieldLogger
)

func init() {
	debug = os.Getenv("COMPOSE_DEBUG") != ""
	log = defaultLogger()
}

// defaultLogger discards everything, unless COMPOSE_DEBUG is set in the environment.
func defaultLogger() logrus.FieldLogger {
	l := logrus.New()
	if debug {
		l.SetOutput(os.Stderr)
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetOutput(io.Discard)
	}
	return l
}

// SetLogger configures the logger used by compose and the packages building on it. Pass nil
// to restore the default.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = defaultLogger()
	}
	log = l
}

// Logger returns the current logger.
func Logger() logrus.FieldLogger {
	return log
}
