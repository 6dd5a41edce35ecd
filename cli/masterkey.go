package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// DefaultMasterKeyProvider is the provider used when a master key provider
// configuration names none, and when decrypting without any configuration.
const DefaultMasterKeyProvider = "aws-kms"

const (
	providerParam = "provider"
	keyParam      = "key"
	regionParam   = "region"
)

// MasterKeyProviderConfig selects a master key provider and the keys it
// should use. Params holds every other parameter given for the provider.
type MasterKeyProviderConfig struct {
	Provider string   `yaml:"provider"`
	Keys     []string `yaml:"key"`
	Params   KwArgs   `yaml:"params"`
}

// Equal reports whether c and other describe the same configuration.
func (c MasterKeyProviderConfig) Equal(other MasterKeyProviderConfig) bool {
	return c.Provider == other.Provider &&
		slices.Equal(c.Keys, other.Keys) &&
		c.Params.Equal(other.Params)
}

// Regions returns the distinct AWS regions referenced by the configuration,
// from explicit region parameters and from the region component of key ARNs.
// Configurations for providers other than [DefaultMasterKeyProvider] have no
// regions.
func (c MasterKeyProviderConfig) Regions() []string {
	if c.Provider != DefaultMasterKeyProvider {
		return nil
	}

	var regions []string

	add := func(region string) {
		if region != "" && !slices.Contains(regions, region) {
			regions = append(regions, region)
		}
	}

	for _, region := range c.Params.Get(regionParam) {
		add(region)
	}

	for _, key := range c.Keys {
		if !arn.IsARN(key) {
			continue
		}

		if a, err := arn.Parse(key); err == nil {
			add(a.Region)
		}
	}

	return regions
}

// LogValue implements slog.LogValuer.
func (c MasterKeyProviderConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", c.Provider),
		slog.Any("key", c.Keys),
		slog.String("params", c.Params.String()),
	)
}

// ProcessMasterKeyProviderConfigs converts the key=value token lists given
// with each -m option into provider configurations, in order.
//
// A configuration without a provider uses [DefaultMasterKeyProvider], but
// naming more than one provider is an error. Encryption needs at least one
// key per configuration; decryption accepts none. Decrypting without any
// configuration yields a single default provider configuration with no keys.
func ProcessMasterKeyProviderConfigs(
	specs [][]string,
	action Action,
) ([]MasterKeyProviderConfig, error) {
	if specs == nil {
		if action == ActionDecrypt {
			return []MasterKeyProviderConfig{
				{Provider: DefaultMasterKeyProvider, Keys: []string{}},
			}, nil
		}

		return nil, newParameterError(msgNoProviderConfig).
			With(slog.String("action", string(action)))
	}

	configs := make([]MasterKeyProviderConfig, 0, len(specs))

	for i, spec := range specs {
		config, err := processMasterKeyProviderConfig(spec, action)
		if err != nil {
			return nil, err.With(slog.Int("master_key", i))
		}

		configs = append(configs, config)
	}

	return configs, nil
}

func processMasterKeyProviderConfig(
	spec []string,
	action Action,
) (MasterKeyProviderConfig, *ParameterParseError) {
	kw, err := parseKwArgs(spec)
	if err != nil {
		return MasterKeyProviderConfig{}, err
	}

	providers := kw.remove(providerParam)
	if providers == nil {
		providers = []string{DefaultMasterKeyProvider}
	}

	if len(providers) != 1 {
		return MasterKeyProviderConfig{}, newParameterError(
			fmt.Sprintf(msgProviderCount, len(providers)),
		).With(slog.Any("provider", providers))
	}

	keys := kw.remove(keyParam)
	if keys == nil {
		if action != ActionDecrypt {
			return MasterKeyProviderConfig{}, newParameterError(msgProviderKeys).
				With(slog.String("provider", providers[0]))
		}

		keys = []string{}
	}

	return MasterKeyProviderConfig{
		Provider: providers[0],
		Keys:     keys,
		Params:   kw,
	}, nil
}
