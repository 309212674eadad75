package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{
			name:   "default config",
			config: nil,
		},
		{
			name: "custom json config",
			config: &Config{
				Level:  "debug",
				Format: "json",
			},
		},
		{
			name: "console config",
			config: &Config{
				Level:  "info",
				Format: "console",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, New(tt.config))
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{
		Level:  "info",
		Format: "json",
		Output: buf,
	})

	log.Info("test message")

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test message", entry["message"])
	assert.NotEmpty(t, entry["time"])
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{
		Level:  "info",
		Format: "json",
		Output: buf,
	})

	child := log.With().
		Str("bucket", "my-bucket").
		Int("files", 3).
		Logger()

	child.Info("bucket emptied")

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Equal(t, "my-bucket", entry["bucket"])
	assert.Equal(t, float64(3), entry["files"])
	assert.Equal(t, "bucket emptied", entry["message"])
}

func TestLogger_ErrorWith(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{
		Level:  "error",
		Format: "json",
		Output: buf,
	})

	testErr := errors.New("bucket not reachable")
	log.ErrorWith("delete failed", testErr, map[string]any{
		"bucket": "my-bucket",
	})

	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Equal(t, "delete failed", entry["message"])
	assert.Equal(t, "bucket not reachable", entry["error"])
	assert.Equal(t, "my-bucket", entry["bucket"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{
		Level:  "warn",
		Format: "json",
		Output: buf,
	})

	log.Info("should be dropped")
	assert.Empty(t, buf.String())

	log.Warn("should be kept")
	assert.Contains(t, buf.String(), "should be kept")
}
