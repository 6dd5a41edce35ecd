//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the CLI embedded at build time.
//
//go:embed VERSION
var version string

// Version returns the trimmed contents of the embedded VERSION file.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command identifier. It appears in help text, the
	// version report, and the default config path.
	Name = "aws-encryption-sdk-cli"
	// Description is a short, human-readable summary used in help output.
	Description = "Encrypt and decrypt files and streams with the AWS Encryption SDK"

	// SDKName identifies the encryption library that performs the actual
	// cryptographic operations.
	SDKName = "aws-encryption-sdk"
)

// SDKVersion is the version of the linked encryption library. It may be
// overridden at link time with -ldflags "-X".
var SDKVersion = "1.3.8"

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
