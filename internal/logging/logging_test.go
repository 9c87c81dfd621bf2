package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedEvents struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (c *capturedEvents) beforeSend(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	// drop, nothing leaves the test
	return nil
}

func newTestHub(t *testing.T) (*sentry.Hub, *capturedEvents) {
	t.Helper()
	captured := &capturedEvents{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: captured.beforeSend,
	})
	require.NoError(t, err)
	return sentry.NewHub(client, sentry.NewScope()), captured
}

func TestSentryHook_Fire(t *testing.T) {
	hub, captured := newTestHub(t)
	hook := NewSentryHookWithHub([]logrus.Level{logrus.ErrorLevel}, hub)
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	logger := logrus.New()
	logger.AddHook(hook)
	logger.SetOutput(&nopWriter{})

	logger.WithField("slug", "microservices-nodejs-docker").Error("remote store down")
	logger.WithError(errors.New("connection refused")).Error("list posts")
	// not a hooked level
	logger.Warn("just a warning")

	captured.mu.Lock()
	defer captured.mu.Unlock()
	require.Len(t, captured.events, 2)

	assert.Equal(t, "remote store down", captured.events[0].Message)
	assert.Equal(t, sentry.LevelError, captured.events[0].Level)
	assert.Equal(t, "microservices-nodejs-docker", captured.events[0].Extra["slug"])

	require.NotEmpty(t, captured.events[1].Exception)
	assert.Equal(t, "connection refused", captured.events[1].Exception[0].Value)
	assert.Equal(t, "list posts", captured.events[1].Extra["message"])
}

func TestSentryLevel(t *testing.T) {
	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.PanicLevel))
	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.FatalLevel))
	assert.Equal(t, sentry.LevelError, sentryLevel(logrus.ErrorLevel))
	assert.Equal(t, sentry.LevelWarning, sentryLevel(logrus.WarnLevel))
	assert.Equal(t, sentry.LevelInfo, sentryLevel(logrus.InfoLevel))
	assert.Equal(t, sentry.LevelDebug, sentryLevel(logrus.TraceLevel))
}

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warn"))
	assert.Equal(t, logrus.PanicLevel, GetLevel("panic"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("whatever"))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
