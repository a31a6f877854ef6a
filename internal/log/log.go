// Package log carries a logrus logger through a context and maps gdalext
// diagnostics onto logrus levels.
package log

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	gdalext "github.com/contriboss/gdal-extension-go"
)

var (
	// G is an alias for FromContext.
	G = FromContext

	// L is the fallback logger.
	L = logrus.StandardLogger()
)

// contextKey is used to retrieve the logger from the context.
type contextKey struct{}

// WithLogger returns a new context with the provided logger.
func WithLogger(ctx context.Context, logger *logrus.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger in the context, or L.
func FromContext(ctx context.Context) *logrus.Logger {
	l, ok := ctx.Value(contextKey{}).(*logrus.Logger)
	if !ok || l == nil {
		return L
	}

	return l
}

// New creates a text logger writing to out.
func New(out io.Writer, level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// Level maps a diagnostic severity to a logrus level. Critical maps to
// FatalLevel; Report logs it without exiting.
func Level(sev gdalext.Severity) logrus.Level {
	switch sev {
	case gdalext.SeverityDebug:
		return logrus.DebugLevel
	case gdalext.SeverityInfo:
		return logrus.InfoLevel
	case gdalext.SeverityWarning:
		return logrus.WarnLevel
	default:
		return logrus.FatalLevel
	}
}

// Report logs each diagnostic at its mapped level.
func Report(logger *logrus.Logger, diags gdalext.Diagnostics) {
	for _, d := range diags {
		entry := logrus.NewEntry(logger)
		if d.Severity == gdalext.SeverityCritical {
			entry = entry.WithField("severity", d.Severity.String())
		}
		entry.Log(Level(d.Severity), d.Message)
	}
}
