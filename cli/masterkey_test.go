package cli

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessMasterKeyProviderConfigs(t *testing.T) {
	tests := []struct {
		name   string
		specs  [][]string
		action Action
		want   []MasterKeyProviderConfig
	}{
		{
			name:   "decrypt without configuration",
			specs:  nil,
			action: ActionDecrypt,
			want:   []MasterKeyProviderConfig{{Provider: "aws-kms", Keys: []string{}}},
		},
		{
			name:   "explicit provider",
			specs:  [][]string{{"provider=ex_provider", "key=ex_mk_id"}},
			action: ActionEncrypt,
			want:   []MasterKeyProviderConfig{{Provider: "ex_provider", Keys: []string{"ex_mk_id"}}},
		},
		{
			name:   "default provider",
			specs:  [][]string{{"key=ex_mk_id"}},
			action: ActionEncrypt,
			want:   []MasterKeyProviderConfig{{Provider: "aws-kms", Keys: []string{"ex_mk_id"}}},
		},
		{
			name:   "decrypt without keys",
			specs:  [][]string{{"provider=ex_provider"}},
			action: ActionDecrypt,
			want:   []MasterKeyProviderConfig{{Provider: "ex_provider", Keys: []string{}}},
		},
		{
			name: "multiple keys and order",
			specs: [][]string{
				{"provider=ex_provider_1", "key=ex_mk_id_1", "key=ex_mk_id_2"},
				{"provider=ex_provider_2", "key=ex_mk_id_3"},
			},
			action: ActionEncrypt,
			want: []MasterKeyProviderConfig{
				{Provider: "ex_provider_1", Keys: []string{"ex_mk_id_1", "ex_mk_id_2"}},
				{Provider: "ex_provider_2", Keys: []string{"ex_mk_id_3"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProcessMasterKeyProviderConfigs(tt.specs, tt.action)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))

			for i := range got {
				assert.Equal(t, tt.want[i].Provider, got[i].Provider)
				assert.Equal(t, tt.want[i].Keys, got[i].Keys)
				assert.Zero(t, got[i].Params.Len())
			}
		})
	}
}

func TestProcessMasterKeyProviderConfigs_Params(t *testing.T) {
	got, err := ProcessMasterKeyProviderConfigs([][]string{{
		"key=ex_mk_id",
		"region=us-west-2",
		"profile=dev",
		"region=eu-central-1",
	}}, ActionEncrypt)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "aws-kms", got[0].Provider)
	assert.Equal(t, map[string][]string{
		"region":  {"us-west-2", "eu-central-1"},
		"profile": {"dev"},
	}, got[0].Params.Map())
}

func TestProcessMasterKeyProviderConfigs_Errors(t *testing.T) {
	tests := []struct {
		name   string
		specs  [][]string
		action Action
		msg    string
	}{
		{
			name:   "encrypt without configuration",
			specs:  nil,
			action: ActionEncrypt,
			msg:    "No master key provider configuration found",
		},
		{
			name:   "two providers",
			specs:  [][]string{{"provider=a", "provider=b", "key=k"}},
			action: ActionEncrypt,
			msg: `Exactly one "provider" must be provided for each master key ` +
				`provider configuration. 2 provided`,
		},
		{
			name:   "two providers when decrypting",
			specs:  [][]string{{"provider=a", "provider=b"}},
			action: ActionDecrypt,
			msg: `Exactly one "provider" must be provided for each master key ` +
				`provider configuration. 2 provided`,
		},
		{
			name:   "encrypt without keys",
			specs:  [][]string{{"provider=ex_provider"}},
			action: ActionEncrypt,
			msg: `At least one "key" must be provided for each master key ` +
				`provider configuration`,
		},
		{
			name:   "malformed token",
			specs:  [][]string{{"provider=a", "key=k"}, {"bogus"}},
			action: ActionEncrypt,
			msg:    `Argument parameter must follow the format "key=value"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProcessMasterKeyProviderConfigs(tt.specs, tt.action)

			assert.Nil(t, got)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestProcessMasterKeyProviderConfigs_ErrorAttrs(t *testing.T) {
	_, err := ProcessMasterKeyProviderConfigs([][]string{
		{"key=k"},
		{"provider=ex_provider"},
	}, ActionEncrypt)

	var perr *ParameterParseError

	require.ErrorAs(t, err, &perr)

	attrs := perr.Attrs()
	assert.True(t, hasAttr(attrs, slog.String("provider", "ex_provider")), attrs)
	assert.True(t, hasAttr(attrs, slog.Int("master_key", 1)), attrs)
}

func hasAttr(attrs []slog.Attr, want slog.Attr) bool {
	for _, attr := range attrs {
		if attr.Equal(want) {
			return true
		}
	}

	return false
}

func TestMasterKeyProviderConfig_Regions(t *testing.T) {
	tests := []struct {
		name   string
		config []string
		want   []string
	}{
		{
			name:   "key ARN",
			config: []string{"key=arn:aws:kms:us-west-2:111122223333:key/1234abcd"},
			want:   []string{"us-west-2"},
		},
		{
			name: "region parameter first",
			config: []string{
				"key=arn:aws:kms:eu-west-1:111122223333:alias/example",
				"region=us-east-1",
			},
			want: []string{"us-east-1", "eu-west-1"},
		},
		{
			name: "deduplicated",
			config: []string{
				"key=arn:aws:kms:us-west-2:111122223333:key/a",
				"key=arn:aws:kms:us-west-2:111122223333:key/b",
				"region=us-west-2",
			},
			want: []string{"us-west-2"},
		},
		{
			name:   "key id only",
			config: []string{"key=1234abcd-12ab-34cd-56ef-1234567890ab"},
			want:   nil,
		},
		{
			name:   "other provider",
			config: []string{"provider=raw", "key=arn:aws:kms:us-west-2:1:key/a"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProcessMasterKeyProviderConfigs([][]string{tt.config}, ActionEncrypt)
			require.NoError(t, err)
			require.Len(t, got, 1)

			assert.Equal(t, tt.want, got[0].Regions())
		})
	}
}

func TestMasterKeyProviderConfig_Equal(t *testing.T) {
	a, err := ProcessMasterKeyProviderConfigs([][]string{{"key=k", "region=r"}}, ActionEncrypt)
	require.NoError(t, err)

	b, err := ProcessMasterKeyProviderConfigs([][]string{{"region=r", "key=k"}}, ActionEncrypt)
	require.NoError(t, err)

	c, err := ProcessMasterKeyProviderConfigs([][]string{{"key=k", "region=s"}}, ActionEncrypt)
	require.NoError(t, err)

	assert.True(t, a[0].Equal(b[0]))
	assert.False(t, a[0].Equal(c[0]))
}
