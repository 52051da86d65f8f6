package logger_test

import (
	"bytes"
	"testing"

	"github.com/partforge/partforge/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	buf := new(bytes.Buffer)
	l := logger.New()
	l.SetOutput(buf)

	l.Info("building bolt.scad")
	assert.Contains(t, buf.String(), "building bolt.scad")
	assert.Contains(t, buf.String(), "level=INFO")

	buf.Reset()
	l.Warn("cache entry stale")
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	l.Error(zerr.New("compiler failed"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "compiler failed")
}

func TestLogger_DebugGatedByLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	l := logger.New()
	l.SetOutput(buf)

	l.Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	l.SetDebug(true)
	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	l.SetDebug(false)
	buf.Reset()
	l.Debug("hidden again")
	assert.Empty(t, buf.String())
}

func TestLogger_NilErrorIsIgnored(t *testing.T) {
	buf := new(bytes.Buffer)
	l := logger.New()
	l.SetOutput(buf)

	l.Error(nil)
	assert.Empty(t, buf.String())
}
