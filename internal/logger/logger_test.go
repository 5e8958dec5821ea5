package logger_test

import (
	"testing"

	"github.com/nikolayk812/cart-manager/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       logger.Config
		wantError string
	}{
		{
			name: "json: ok",
			cfg:  logger.Config{Level: "debug", Encoding: "json"},
		},
		{
			name: "console with time format: ok",
			cfg:  logger.Config{Level: "WARN", Encoding: "console", TimeFormat: "2006-01-02"},
		},
		{
			name: "unknown level falls back to info: ok",
			cfg:  logger.Config{Level: "verbose"},
		},
		{
			name:      "unknown encoding: error",
			cfg:       logger.Config{Encoding: "xml"},
			wantError: "unknown log encoding[xml]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(tt.cfg)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestFromZap_With(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := logger.FromZap(zap.New(core)).With("cartID", "c1")

	l.Debugf("hidden")
	l.Infof("added %d", 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "added 3", entries[0].Message)
	assert.Equal(t, "c1", entries[0].ContextMap()["cartID"])
}
