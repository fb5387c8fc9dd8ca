package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhonRainbow6/WebProject/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestUserID(t *testing.T) {
	attr := logger.UserID("123")
	require.Equal(t, "user_id", attr.Key)
	assert.Equal(t, "123", attr.Value.String())

	assert.True(t, logger.UserID("").Equal(slog.Attr{}))
}

func TestEmailIsMasked(t *testing.T) {
	attr := logger.Email("someone@example.com")
	require.Equal(t, "email", attr.Key)
	assert.NotContains(t, attr.Value.String(), "someone")
	assert.Contains(t, attr.Value.String(), "example.com")
}

func TestProvider(t *testing.T) {
	attr := logger.Provider("steam")
	require.Equal(t, "provider", attr.Key)
	assert.Equal(t, "steam", attr.Value.String())
}

func TestReason(t *testing.T) {
	attr := logger.Reason("invalid_steam_id")
	require.Equal(t, "reason", attr.Key)
	assert.Equal(t, "invalid_steam_id", attr.Value.String())

	assert.True(t, logger.Reason("").Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}

func TestDuration(t *testing.T) {
	attr := logger.Duration(time.Second)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, time.Second, attr.Value.Duration())
}
