package cli

import (
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// KwArgs maps parameter keys to every value given for them. Keys iterate in
// the order they were first seen and values in the order they were given.
type KwArgs struct {
	keys   []string
	values map[string][]string
}

// add appends value to the values of key.
func (k *KwArgs) add(key, value string) {
	if k.values == nil {
		k.values = make(map[string][]string)
	}

	if _, ok := k.values[key]; !ok {
		k.keys = append(k.keys, key)
	}

	k.values[key] = append(k.values[key], value)
}

// remove deletes key and returns its values.
func (k *KwArgs) remove(key string) []string {
	values, ok := k.values[key]
	if !ok {
		return nil
	}

	delete(k.values, key)
	k.keys = slices.DeleteFunc(k.keys, func(s string) bool { return s == key })

	return values
}

// Get returns the values given for key, or nil.
func (k KwArgs) Get(key string) []string { return k.values[key] }

// Has reports whether key was given at all.
func (k KwArgs) Has(key string) bool {
	_, ok := k.values[key]

	return ok
}

// Len returns the number of distinct keys.
func (k KwArgs) Len() int { return len(k.keys) }

// Keys iterates over the distinct keys in first-seen order.
func (k KwArgs) Keys() iter.Seq[string] { return slices.Values(k.keys) }

// All iterates over keys in first-seen order with their values.
func (k KwArgs) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, key := range k.keys {
			if !yield(key, k.values[key]) {
				return
			}
		}
	}
}

// Map returns an unordered copy of k.
func (k KwArgs) Map() map[string][]string {
	m := make(map[string][]string, len(k.values))
	for key, values := range k.values {
		m[key] = slices.Clone(values)
	}

	return m
}

// Equal reports whether k and other hold the same keys, key order, and values.
func (k KwArgs) Equal(other KwArgs) bool {
	return slices.Equal(k.keys, other.keys) &&
		maps.EqualFunc(k.values, other.values, slices.Equal[[]string])
}

// String formats k as space-separated key=value tokens.
func (k KwArgs) String() string {
	var sb strings.Builder

	for key, values := range k.All() {
		for _, value := range values {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(key + "=" + value)
		}
	}

	return sb.String()
}

// IsZero reports whether k holds no keys.
func (k KwArgs) IsZero() bool { return k.Len() == 0 }

// MarshalYAML renders k as a mapping of key to value list.
func (k KwArgs) MarshalYAML() (any, error) { return k.Map(), nil }

// ParseKwArgs decodes key=value tokens. The key ends at the first "=", so
// values may themselves contain "=". Repeated keys accumulate values.
func ParseKwArgs(tokens []string) (KwArgs, error) {
	kw, err := parseKwArgs(tokens)
	if err != nil {
		return KwArgs{}, err
	}

	return kw, nil
}

func parseKwArgs(tokens []string) (KwArgs, *ParameterParseError) {
	var kw KwArgs

	for _, token := range tokens {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			return KwArgs{}, newParameterError(msgKwArgFormat).
				With(slog.String("parameter", token))
		}

		kw.add(key, value)
	}

	return kw, nil
}

// collapse replaces each value list with its first element.
// Callers must ensure every key holds exactly one value.
func collapse(kw KwArgs) map[string]string {
	m := make(map[string]string, kw.Len())
	for key, value := range collapsed(kw) {
		m[key] = value
	}

	return m
}

// collapsed iterates over kw in first-seen key order, yielding the first
// value of each key.
func collapsed(kw KwArgs) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for key, values := range kw.All() {
			if !yield(key, values[0]) {
				return
			}
		}
	}
}

// ParseAndCollapse decodes key=value tokens into a map of scalar values.
// A key given more than once is an error.
func ParseAndCollapse(tokens []string) (map[string]string, error) {
	m, err := parseAndCollapse(tokens)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func parseAndCollapse(tokens []string) (map[string]string, *ParameterParseError) {
	kw, err := parseKwArgs(tokens)
	if err != nil {
		return nil, err
	}

	if err := requireSingleValued(kw); err != nil {
		return nil, err
	}

	return collapse(kw), nil
}

func requireSingleValued(kw KwArgs) *ParameterParseError {
	for key, values := range kw.All() {
		if len(values) != 1 {
			return newParameterError(fmt.Sprintf(msgRepeatedParameter, key)).
				With(slog.Any("values", values))
		}
	}

	return nil
}
