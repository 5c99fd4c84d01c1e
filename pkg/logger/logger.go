// Package logger configures the diagnostic logger. User facing output is
// printed by the commands themselves; this logger only carries debug and
// warning detail on stderr.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const DebugEnv = "QUICK_CICD_DEBUG"

// New returns a logger writing to w. Debug level is enabled by verbose or by
// QUICK_CICD_DEBUG=1.
func New(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	log.SetLevel(logrus.WarnLevel)
	if verbose || DebugFromEnv() {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func Default(verbose bool) *logrus.Logger {
	return New(os.Stderr, verbose)
}

func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func DebugFromEnv() bool {
	v := strings.TrimSpace(os.Getenv(DebugEnv))
	return v == "1" || strings.EqualFold(v, "true")
}
