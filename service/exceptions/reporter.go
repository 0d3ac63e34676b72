package exceptions

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

const defaultFlushTimeout = time.Second * 5

// Reporter sends unexpected service errors to an external source
type Reporter interface {
	ReportException(err error)
}

// New returns a SentryReporter when dsn is set, otherwise a LogReporter
// writing to logger
func New(dsn, env string, logger logrus.FieldLogger) (Reporter, error) {
	if dsn == "" {
		return &LogReporter{Logger: logger}, nil
	}
	r, err := NewSentryReporter(dsn, env)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// NoopReporter is a no-op exception reporter
type NoopReporter struct{}

// ReportException does nothing
func (r *NoopReporter) ReportException(_ error) {}

// LogReporter logs exceptions at error level
type LogReporter struct {
	Logger logrus.FieldLogger
}

// ReportException logs err
func (r *LogReporter) ReportException(err error) {
	r.Logger.WithError(err).Error("exception")
}

// SentryReporter is a Reporter that sends error information to Sentry
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter creates and returns an instance of SentryReporter
func NewSentryReporter(dsn, env string) (*SentryReporter, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{Dsn: dsn, Environment: env})
	if err != nil {
		return nil, err
	}
	scope := sentry.NewScope()
	scope.SetTag("service", "timecode-service")
	return &SentryReporter{hub: sentry.NewHub(client, scope)}, nil
}

// ReportException will send errors to Sentry
func (r *SentryReporter) ReportException(err error) {
	r.hub.CaptureException(err)
	r.hub.Flush(defaultFlushTimeout)
}
