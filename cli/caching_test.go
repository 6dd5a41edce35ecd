package cli

import (
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessCachingConfig(t *testing.T) {
	got, err := ProcessCachingConfig([]string{
		"capacity=3",
		"max_messages_encrypted=55",
		"max_bytes_encrypted=8",
		"max_age=32",
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 3, got.Capacity)
	assert.InDelta(t, 32.0, got.MaxAge, 0)
	require.NotNil(t, got.MaxMessagesEncrypted)
	assert.Equal(t, 55, *got.MaxMessagesEncrypted)
	require.NotNil(t, got.MaxBytesEncrypted)
	assert.Equal(t, 8, *got.MaxBytesEncrypted)
}

func TestProcessCachingConfig_Minimal(t *testing.T) {
	got, err := ProcessCachingConfig([]string{"max_age=0.5", "capacity=10"})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, &CachingConfig{Capacity: 10, MaxAge: 0.5}, got)
}

func TestProcessCachingConfig_Disabled(t *testing.T) {
	got, err := ProcessCachingConfig(nil)

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestProcessCachingConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		msg    string
	}{
		{
			name:   "missing max_age",
			tokens: []string{"capacity=3", "max_messages_encrypted=55"},
			msg:    `If enabling caching, both "capacity" and "max_age" are required`,
		},
		{
			name:   "missing capacity",
			tokens: []string{"max_age=3"},
			msg:    `If enabling caching, both "capacity" and "max_age" are required`,
		},
		{
			name:   "required checked before keys",
			tokens: []string{"key=value"},
			msg:    `If enabling caching, both "capacity" and "max_age" are required`,
		},
		{
			name:   "invalid key",
			tokens: []string{"capacity=3", "max_age=1", "asdf=5"},
			msg:    `Invalid caching configuration key: "asdf"`,
		},
		{
			name:   "repeated key",
			tokens: []string{"capacity=3", "capacity=4", "max_age=1"},
			msg:    `Parameter "capacity" may not be specified more than once`,
		},
		{
			name:   "malformed token",
			tokens: []string{"capacity"},
			msg:    `Argument parameter must follow the format "key=value"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProcessCachingConfig(tt.tokens)

			assert.Nil(t, got)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestProcessCachingConfig_BadValue(t *testing.T) {
	for _, tokens := range [][]string{
		{"capacity=three", "max_age=1"},
		{"capacity=3", "max_age=soon"},
		{"capacity=3", "max_age=1", "max_bytes_encrypted=1.5"},
	} {
		_, err := ProcessCachingConfig(tokens)

		var (
			perr *ParameterParseError
			nerr *strconv.NumError
		)

		require.ErrorAs(t, err, &perr)
		require.ErrorAs(t, err, &nerr)
		assert.Contains(t, err.Error(), "Invalid caching configuration value for")
	}
}

func TestProcessCachingConfig_Suggestion(t *testing.T) {
	_, err := ProcessCachingConfig([]string{"capacity=3", "max_age=1", "maxage=2"})

	var perr *ParameterParseError

	require.ErrorAs(t, err, &perr)
	assert.EqualError(t, err, `Invalid caching configuration key: "maxage"`)
	assert.True(t, hasAttr(perr.Attrs(), slog.String("suggestion", "max_age")), perr.Attrs())
}

func TestCachingConfig_LogValue(t *testing.T) {
	var disabled *CachingConfig

	assert.Equal(t, "disabled", disabled.LogValue().String())

	enabled := &CachingConfig{Capacity: 1, MaxAge: 2}
	assert.Equal(t, slog.KindGroup, enabled.LogValue().Kind())
}
