package cli

import (
	"slices"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKwArgs(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   map[string][]string
		keys   []string
	}{
		{
			name:   "distinct keys",
			tokens: []string{"a=b", "c=d", "e=f"},
			want:   map[string][]string{"a": {"b"}, "c": {"d"}, "e": {"f"}},
			keys:   []string{"a", "c", "e"},
		},
		{
			name:   "repeated key accumulates",
			tokens: []string{"a=b", "b=c", "b=d"},
			want:   map[string][]string{"a": {"b"}, "b": {"c", "d"}},
			keys:   []string{"a", "b"},
		},
		{
			name:   "value containing separator",
			tokens: []string{"key=arn:aws:kms:us-east-1:1:alias/x=y"},
			want:   map[string][]string{"key": {"arn:aws:kms:us-east-1:1:alias/x=y"}},
			keys:   []string{"key"},
		},
		{
			name:   "empty value",
			tokens: []string{"a="},
			want:   map[string][]string{"a": {""}},
			keys:   []string{"a"},
		},
		{
			name:   "first-seen order",
			tokens: []string{"z=1", "a=2", "z=3"},
			want:   map[string][]string{"z": {"1", "3"}, "a": {"2"}},
			keys:   []string{"z", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kw, err := ParseKwArgs(tt.tokens)
			require.NoError(t, err)

			assert.Equal(t, tt.want, kw.Map())
			assert.Equal(t, tt.keys, slices.Collect(kw.Keys()))
			assert.Equal(t, len(tt.keys), kw.Len())
		})
	}
}

func TestParseKwArgs_MissingSeparator(t *testing.T) {
	for _, tokens := range [][]string{
		{"asdfsadf"},
		{"a=b", "asdfsadf"},
		{"a=b", "c=d", "nope"},
	} {
		_, err := ParseKwArgs(tokens)

		var perr *ParameterParseError

		require.ErrorAs(t, err, &perr)
		assert.EqualError(t, err, `Argument parameter must follow the format "key=value"`)
	}
}

func TestKwArgs_String(t *testing.T) {
	kw, err := ParseKwArgs([]string{"provider=aws-kms", "key=a", "key=b"})
	require.NoError(t, err)

	assert.Equal(t, "provider=aws-kms key=a key=b", kw.String())
}

func TestKwArgs_Remove(t *testing.T) {
	kw, err := ParseKwArgs([]string{"a=1", "b=2", "a=3"})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "3"}, kw.remove("a"))
	assert.Nil(t, kw.remove("a"))
	assert.False(t, kw.Has("a"))
	assert.Equal(t, []string{"b"}, slices.Collect(kw.Keys()))
}

func TestCollapse(t *testing.T) {
	kw, err := ParseKwArgs([]string{"a=b", "c=d", "e=f"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"a": "b", "c": "d", "e": "f"}, collapse(kw))
}

func TestParseAndCollapse(t *testing.T) {
	got, err := ParseAndCollapse([]string{"key1=value1", "key2=value2"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"key1": "value1", "key2": "value2"}, got)
}

func TestParseAndCollapse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		msg    string
	}{
		{
			name:   "repeated key",
			tokens: []string{"a=b", "a=c"},
			msg:    `Parameter "a" may not be specified more than once`,
		},
		{
			name:   "missing separator",
			tokens: []string{"a"},
			msg:    `Argument parameter must follow the format "key=value"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAndCollapse(tt.tokens)

			assert.Nil(t, got)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestMasterKeyProviderConfig_MarshalYAML(t *testing.T) {
	configs, err := ProcessMasterKeyProviderConfigs([][]string{
		{"key=k", "region=us-west-2", "profile=dev"},
		{"key=j"},
	}, ActionEncrypt)
	require.NoError(t, err)

	b, err := yaml.Marshal(configs)
	require.NoError(t, err)

	var doc []map[string]any
	require.NoError(t, yaml.Unmarshal(b, &doc))
	require.Len(t, doc, 2)

	assert.Equal(t, map[string]any{
		"region":  []any{"us-west-2"},
		"profile": []any{"dev"},
	}, doc[0]["params"])
	assert.Empty(t, doc[1]["params"])
}

func TestKwArgs_IsZero(t *testing.T) {
	var kw KwArgs
	assert.True(t, kw.IsZero())

	kw, err := ParseKwArgs([]string{"a=b"})
	require.NoError(t, err)
	assert.False(t, kw.IsZero())

	kw.remove("a")
	assert.True(t, kw.IsZero())
}
