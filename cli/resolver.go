package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML defaults files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// Top-level keys are flag names. Either the hyphenated flag form
// ("frame-length") or its underscored form ("frame_length") is accepted.
// Keyword-value flags take a list:
//
//	encrypt: true
//	frame_length: 4096
//	encryption-context:
//	  - team=storage
//	  - stage=prod
//	log-format: text
//
// Command-line flags override config file values.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return defaults{}, nil
		}

		return nil, fmt.Errorf("invalid configuration file: %w", err)
	}

	cfg := make(defaults, len(doc))

	for key, value := range doc {
		cfg[key] = normalize(value)
	}

	return cfg, nil
}

// normalize converts YAML scalars to the forms kong mappers accept. Numbers
// become strings; lists are normalized element-wise.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		list := make([]any, len(v))
		for i, item := range v {
			list[i] = normalize(item)
		}

		return list
	default:
		return value
	}
}

// defaults implements [kong.Resolver] for a flat map of flag defaults.
type defaults map[string]any

// Validate implements [kong.Resolver].
func (r defaults) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
//
// A default is dropped when the command line set another flag of the same
// xor group, so "encrypt: true" in the file does not conflict with -d.
func (r defaults) Resolve(
	ctx *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if xorSet(ctx, flag) {
		return nil, nil
	}

	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

// xorSet reports whether ctx holds a flag other than flag that shares one
// of its xor groups.
func xorSet(ctx *kong.Context, flag *kong.Flag) bool {
	if ctx == nil || len(flag.Xor) == 0 {
		return false
	}

	for _, path := range ctx.Path {
		if path.Flag == nil || path.Flag == flag {
			continue
		}

		for _, group := range path.Flag.Xor {
			if slices.Contains(flag.Xor, group) {
				return true
			}
		}
	}

	return false
}
