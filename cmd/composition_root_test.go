package cmd

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	assert.Equal(t, 15*time.Second, parseDuration(logger, "BACKEND_TIMEOUT", "15s"))
	assert.Zero(t, parseDuration(logger, "GEO_TIMEOUT", ""))
	assert.Empty(t, buf.String(), "an unset value is the default, not a typo")

	assert.Zero(t, parseDuration(logger, "GEO_TIMEOUT", "ten seconds"))
	assert.Contains(t, buf.String(), "GEO_TIMEOUT", "a malformed value is reported")
}
