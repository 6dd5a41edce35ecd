package cli

import (
	"github.com/alecthomas/kong"
)

// grammar declares every recognized option. kong fills a fresh grammar for
// each parse; [Parser.Parse] then post-processes it into a [Config].
type grammar struct {
	Encrypt bool `help:"Encrypt data."       required:"" short:"e" xor:"action"`
	Decrypt bool `help:"Decrypt data."       required:"" short:"d" xor:"action"`
	Version versionFlag `help:"Show version information and exit."`

	Input  once[string] `help:"Input file or directory for encrypt/decrypt operation, or '-' for stdin."  placeholder:"PATH" required:"" short:"i"`
	Output once[string] `help:"Output file or directory for encrypt/decrypt operation, or '-' for stdout." placeholder:"PATH" required:"" short:"o"`

	MasterKeys        providerSpecs  `help:"Identifying information for a master key provider and master keys (repeatable)." name:"master-key"         placeholder:"KEY=VALUE ..." short:"m"`
	EncryptionContext once[[]string] `help:"key-value pair encryption context values."                                       name:"encryption-context" placeholder:"KEY=VALUE ..." short:"c"`
	Algorithm         once[string]   `help:"Algorithm name."                                                                 placeholder:"NAME"          short:"a"`
	FrameLength       once[int]      `help:"Frame length in bytes."                                                          name:"frame-length"       placeholder:"BYTES"`
	MaxLength         once[int]      `help:"Maximum frame length (for framed messages) or content length (for non-framed messages) (decrypt only)." name:"max-length" placeholder:"BYTES"`
	Caching           once[[]string] `help:"Configuration options for a caching cryptographic materials manager and local cryptographic materials cache." placeholder:"KEY=VALUE ..."`

	Recursive      bool `help:"Allow operation on directories as input." short:"r"`
	RecursiveAlias bool `hidden:""                                         name:"recursive-alias" short:"R"`

	Suffix           once[string] `help:"Custom suffix to use when target filename is not specified." placeholder:"SUFFIX"`
	Interactive      bool         `help:"Force aws-encryption-sdk-cli to prompt you for verification before overwriting existing files."`
	NoOverwrite      bool         `help:"Never overwrite existing files."                                                name:"no-overwrite"`
	SuppressMetadata bool         `help:"Suppress metadata output."                                                      name:"suppress-metadata" short:"S" xor:"metadata"`
	MetadataOutput   once[string] `help:"File to which to write metadata records."                                       name:"metadata-output"   placeholder:"PATH" xor:"metadata"`
	Encode           bool         `help:"Base64-encode output after processing."`
	Decode           bool         `help:"Base64-decode input before processing."`

	Verbosity int  `help:"Enables logging and sets detail level. Multiple -v options increase verbosity." short:"v" type:"counter" xor:"verbosity"`
	Quiet     bool `help:"Suppresses most warning and diagnostic messages."                                         short:"q" xor:"verbosity"`

	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`
}

// versionRequest aborts a parse that asked for the version report.
type versionRequest struct {
	report string
}

func (v *versionRequest) Error() string { return v.report }

// versionFlag short-circuits parsing when given: it runs before defaults
// are reset and before required options are checked.
type versionFlag bool

// BeforeReset is a kong hook.
func (versionFlag) BeforeReset(vars kong.Vars) error {
	return &versionRequest{report: vars[versionVar]}
}

// versionVar is the kong variable holding the version report.
const versionVar = "version"
