package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// CachingConfig configures the local data key cache. A nil *CachingConfig
// means caching is disabled.
type CachingConfig struct {
	Capacity             int     `yaml:"capacity"`
	MaxAge               float64 `yaml:"max_age"`
	MaxMessagesEncrypted *int    `yaml:"max_messages_encrypted,omitempty"`
	MaxBytesEncrypted    *int    `yaml:"max_bytes_encrypted,omitempty"`
}

// LogValue implements slog.LogValuer.
func (c *CachingConfig) LogValue() slog.Value {
	if c == nil {
		return slog.StringValue("disabled")
	}

	attrs := []slog.Attr{
		slog.Int("capacity", c.Capacity),
		slog.Float64("max_age", c.MaxAge),
	}

	if c.MaxMessagesEncrypted != nil {
		attrs = append(attrs, slog.Int("max_messages_encrypted", *c.MaxMessagesEncrypted))
	}

	if c.MaxBytesEncrypted != nil {
		attrs = append(attrs, slog.Int("max_bytes_encrypted", *c.MaxBytesEncrypted))
	}

	return slog.GroupValue(attrs...)
}

// cachingField assigns a parsed caching parameter to its CachingConfig field.
type cachingField func(c *CachingConfig, value string) error

func intField(field func(*CachingConfig) *int) cachingField {
	return func(c *CachingConfig, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return err
		}

		*field(c) = n

		return nil
	}
}

func optionalIntField(field func(*CachingConfig) **int) cachingField {
	return func(c *CachingConfig, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return err
		}

		*field(c) = &n

		return nil
	}
}

//nolint:gochecknoglobals
var cachingFields = map[string]cachingField{
	"capacity": intField(func(c *CachingConfig) *int { return &c.Capacity }),
	"max_age": func(c *CachingConfig, value string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return err
		}

		c.MaxAge = f

		return nil
	},
	"max_messages_encrypted": optionalIntField(
		func(c *CachingConfig) **int { return &c.MaxMessagesEncrypted },
	),
	"max_bytes_encrypted": optionalIntField(
		func(c *CachingConfig) **int { return &c.MaxBytesEncrypted },
	),
}

// cachingKeys lists the recognized caching parameters.
//
//nolint:gochecknoglobals
var cachingKeys = []string{
	"capacity",
	"max_age",
	"max_messages_encrypted",
	"max_bytes_encrypted",
}

// ProcessCachingConfig validates and converts the key=value tokens given
// with --caching. A nil token list means caching is disabled and yields a
// nil configuration.
func ProcessCachingConfig(tokens []string) (*CachingConfig, error) {
	if tokens == nil {
		return nil, nil //nolint:nilnil // caching disabled
	}

	config, err := processCachingConfig(tokens)
	if err != nil {
		return nil, err
	}

	return config, nil
}

func processCachingConfig(tokens []string) (*CachingConfig, *ParameterParseError) {
	kw, err := parseKwArgs(tokens)
	if err != nil {
		return nil, err
	}

	if err := requireSingleValued(kw); err != nil {
		return nil, err
	}

	if !kw.Has("capacity") || !kw.Has("max_age") {
		return nil, newParameterError(msgCachingRequired)
	}

	var config CachingConfig

	for key, value := range collapsed(kw) {
		assign, ok := cachingFields[key]
		if !ok {
			perr := newParameterError(fmt.Sprintf(msgCachingInvalidKey, key))
			if match := suggestCachingKey(key); match != "" {
				perr = perr.With(slog.String("suggestion", match))
			}

			return nil, perr
		}

		if err := assign(&config, value); err != nil {
			return nil, newParameterError(fmt.Sprintf(msgCachingValue, key)).
				With(slog.String("value", value)).
				Wrap(err)
		}
	}

	return &config, nil
}

// suggestCachingKey returns the recognized caching key that best matches
// key, or "" if none is close.
func suggestCachingKey(key string) string {
	matches := fuzzy.Find(key, cachingKeys)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}
