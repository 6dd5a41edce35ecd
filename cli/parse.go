package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/aws-encryption-sdk-cli/log"
	"github.com/ardnew/aws-encryption-sdk-cli/pkg"
)

// Action is the operation requested on the command line.
type Action string

const (
	ActionEncrypt Action = "encrypt"
	ActionDecrypt Action = "decrypt"
)

// Config is the normalized result of a successful parse.
//
// Optional settings that were not given are nil (or empty for Algorithm).
// When Version is non-empty the parse was short-circuited by --version and
// no other field is meaningful.
type Config struct {
	Action            Action                    `yaml:"action"`
	Input             string                    `yaml:"input"`
	Output            string                    `yaml:"output"`
	MasterKeys        []MasterKeyProviderConfig `yaml:"master_keys"`
	EncryptionContext map[string]string         `yaml:"encryption_context,omitempty"`
	Algorithm         string                    `yaml:"algorithm,omitempty"`
	FrameLength       *int                      `yaml:"frame_length,omitempty"`
	MaxLength         *int                      `yaml:"max_length,omitempty"`
	Recursive         bool                      `yaml:"recursive"`
	Verbosity         *int                      `yaml:"verbosity,omitempty"`
	Caching           *CachingConfig            `yaml:"caching,omitempty"`
	Version           string                    `yaml:"version,omitempty"`

	Suffix           string `yaml:"suffix,omitempty"`
	Interactive      bool   `yaml:"interactive"`
	NoOverwrite      bool   `yaml:"no_overwrite"`
	SuppressMetadata bool   `yaml:"suppress_metadata"`
	MetadataOutput   string `yaml:"metadata_output,omitempty"`
	Encode           bool   `yaml:"encode"`
	Decode           bool   `yaml:"decode"`
	Quiet            bool   `yaml:"quiet"`

	log   logConfig
	pprof pprofConfig
}

// LogValue implements slog.LogValuer.
func (c *Config) LogValue() slog.Value {
	if c.Version != "" {
		return slog.GroupValue(slog.String("version", c.Version))
	}

	keys := make([]slog.Attr, len(c.MasterKeys))
	for i, mk := range c.MasterKeys {
		keys[i] = slog.Attr{Key: strconv.Itoa(i), Value: mk.LogValue()}
	}

	attrs := []slog.Attr{
		slog.String("action", string(c.Action)),
		slog.String("input", c.Input),
		slog.String("output", c.Output),
		slog.Attr{Key: "master_keys", Value: slog.GroupValue(keys...)},
		slog.Any("encryption_context", c.EncryptionContext),
		slog.String("algorithm", c.Algorithm),
		slog.Bool("recursive", c.Recursive),
		slog.Any("caching", c.Caching),
	}

	if c.FrameLength != nil {
		attrs = append(attrs, slog.Int("frame_length", *c.FrameLength))
	}

	if c.MaxLength != nil {
		attrs = append(attrs, slog.Int("max_length", *c.MaxLength))
	}

	return slog.GroupValue(attrs...)
}

// VersionReport returns the text printed by --version.
func VersionReport() string {
	return fmt.Sprintf("%s/%s %s/%s",
		pkg.Name, pkg.Version(), pkg.SDKName, pkg.SDKVersion)
}

// Option configures a [Parser].
type Option func(options) options

type options struct {
	exit    func(int)
	stdout  io.Writer
	stderr  io.Writer
	configs []string
}

// WithExit sets the function called with the exit status when a parse
// error is reported. The default is [os.Exit].
func WithExit(exit func(int)) Option {
	return func(o options) options {
		o.exit = exit

		return o
	}
}

// WithWriters sets the writers used for usage and error reports.
func WithWriters(stdout, stderr io.Writer) Option {
	return func(o options) options {
		o.stdout, o.stderr = stdout, stderr

		return o
	}
}

// WithConfigFiles adds YAML files providing flag defaults. Files that do not
// exist are ignored.
func WithConfigFiles(paths ...string) Option {
	return func(o options) options {
		o.configs = append(o.configs, paths...)

		return o
	}
}

// Parser turns command-line arguments into a [Config].
type Parser struct {
	kong    *kong.Kong
	grammar *grammar
	log     log.Logger
}

// NewParser returns a parser for the command-line grammar.
func NewParser(opts ...Option) (*Parser, error) {
	o := options{exit: os.Exit, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		o = opt(o)
	}

	g := new(grammar)

	vars := kong.Vars{versionVar: VersionReport()}.
		CloneWith(g.Log.vars()).
		CloneWith(g.Pprof.vars())

	kopts := []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.Exit(o.exit),
		kong.Writers(o.stdout, o.stderr),
		kong.ShortUsageOnError(),
		kong.ExplicitGroups([]kong.Group{g.Log.group(), g.Pprof.group()}),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
		vars,
	}

	for _, path := range o.configs {
		kopts = append(kopts, kong.Configuration(loadYAML, path))
	}

	k, err := kong.New(g, kopts...)
	if err != nil {
		return nil, err
	}

	return &Parser{
		kong:    k,
		grammar: g,
		log:     log.Default().Wrap(log.WithOutput(o.stderr)),
	}, nil
}

// Parse parses args without reporting errors.
//
// Argument files are expanded first, so options given in files and on the
// command line are checked together for duplicates.
func (p *Parser) Parse(args []string) (*Config, error) {
	args, err := ExpandArgFiles(args)
	if err != nil {
		return nil, err
	}

	// kong binds its model to the grammar given to kong.New.
	*p.grammar = grammar{}

	_, err = p.kong.Parse(args)
	if err != nil {
		var version *versionRequest
		if errors.As(err, &version) {
			return &Config{Version: version.report}, nil
		}

		var dup *DuplicateOptionError
		if errors.As(err, &dup) {
			return nil, &DuplicateOptionError{
				Option: typedOption(args, p.kong.Model.Flags, dup.Option, 2),
			}
		}

		return nil, err
	}

	g := *p.grammar

	return g.config()
}

// ParseArgs parses args and reports any error through the parser's error
// channel: the message is written to stderr and the exit function is called
// with a non-zero status. The error is also returned for callers whose exit
// function returns.
func ParseArgs(args []string, opts ...Option) (*Config, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}

	cfg, err := p.Parse(args)
	if err != nil {
		// kong reports only the message; the attributes carry details
		// such as the suggested caching key.
		var perr *ParameterParseError
		if errors.As(err, &perr) {
			p.log.Warn("invalid arguments", slog.Any("error", perr))
		}

		p.kong.FatalIfErrorf(err)

		return nil, err
	}

	return cfg, nil
}

// config post-processes the parsed grammar.
func (g *grammar) config() (*Config, error) {
	cfg := &Config{
		Action:           ActionDecrypt,
		Recursive:        g.Recursive || g.RecursiveAlias,
		FrameLength:      g.FrameLength.ptr(),
		MaxLength:        g.MaxLength.ptr(),
		Interactive:      g.Interactive,
		NoOverwrite:      g.NoOverwrite,
		SuppressMetadata: g.SuppressMetadata,
		Encode:           g.Encode,
		Decode:           g.Decode,
		Quiet:            g.Quiet,
		log:              g.Log,
		pprof:            g.Pprof,
	}

	if g.Encrypt {
		cfg.Action = ActionEncrypt
	}

	cfg.Input, _ = g.Input.Get()
	cfg.Output, _ = g.Output.Get()
	cfg.Algorithm, _ = g.Algorithm.Get()
	cfg.Suffix, _ = g.Suffix.Get()
	cfg.MetadataOutput, _ = g.MetadataOutput.Get()

	if g.Verbosity > 0 {
		v := g.Verbosity
		cfg.Verbosity = &v
	}

	var err error

	cfg.MasterKeys, err = ProcessMasterKeyProviderConfigs(g.MasterKeys.specs, cfg.Action)
	if err != nil {
		return nil, err
	}

	if tokens, ok := g.EncryptionContext.Get(); ok {
		cfg.EncryptionContext, err = ParseAndCollapse(tokens)
		if err != nil {
			return nil, err
		}
	}

	if tokens, ok := g.Caching.Get(); ok {
		cfg.Caching, err = ProcessCachingConfig(tokens)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
