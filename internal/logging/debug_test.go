package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"empty", "", false},
		{"one", "1", true},
		{"true", "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TM_DEBUG", tt.value)
			assert.Equal(t, tt.expected, DebugEnabled())
		})
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Formatter = log.LogfmtFormatter
	Configure(&buf, opts)
	t.Cleanup(func() { Configure(&bytes.Buffer{}, DefaultOptions()) })
	return &buf
}

func TestDebugf(t *testing.T) {
	t.Setenv("TM_DEBUG", "")
	buf := captureLogs(t)

	Debugf("task %s not found", "42")
	assert.Empty(t, buf.String())

	t.Setenv("TM_DEBUG", "1")
	Debugf("task %s not found", "42")
	assert.Contains(t, buf.String(), "task 42 not found")
	assert.Contains(t, buf.String(), "level=debug")
}

func TestDebugln(t *testing.T) {
	t.Setenv("TM_DEBUG", "1")
	buf := captureLogs(t)

	Debugln("reminder", "job", "ran")
	assert.Contains(t, buf.String(), "reminder job ran")
}
