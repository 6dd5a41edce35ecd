package cli

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	shlex "github.com/anmitsu/go-shlex"
)

// ArgFilePrefix marks a command-line token naming an argument file.
const ArgFilePrefix = "@"

// SplitArgLine splits one line of an argument file into tokens with POSIX
// shell quoting rules.
//
// A "#" that begins a word, outside of quotes, starts a comment running to
// the end of the line. Blank and comment-only lines yield no tokens.
func SplitArgLine(line string) (iter.Seq[string], error) {
	words, err := shlex.Split(stripComment(line), true)
	if err != nil {
		return nil, fmt.Errorf("split argument line %q: %w", line, err)
	}

	words = slices.DeleteFunc(words, func(s string) bool {
		return strings.TrimSpace(s) == ""
	})

	return slices.Values(words), nil
}

// stripComment truncates line at the first unquoted "#" that begins a word.
func stripComment(line string) string {
	var (
		quote   rune
		escaped bool
		prev    = ' '
	)

	for i, r := range line {
		switch {
		case escaped:
			escaped = false

		case r == '\\' && quote != '\'':
			escaped = true

		case quote != 0:
			if r == quote {
				quote = 0
			}

		case r == '\'' || r == '"':
			quote = r

		case r == '#' && unicode.IsSpace(prev):
			return line[:i]
		}

		prev = r
	}

	return line
}

// ExpandArgFiles replaces every token beginning with [ArgFilePrefix] by the
// tokens read from the named file, one line at a time with [SplitArgLine].
// Argument files may reference further argument files.
func ExpandArgFiles(args []string) ([]string, error) {
	return expandArgFiles(args, nil)
}

func expandArgFiles(args, stack []string) ([]string, error) {
	expanded := make([]string, 0, len(args))

	for _, arg := range args {
		path, ok := strings.CutPrefix(arg, ArgFilePrefix)
		if !ok {
			expanded = append(expanded, arg)

			continue
		}

		tokens, err := readArgFile(path, stack)
		if err != nil {
			return nil, err
		}

		expanded = append(expanded, tokens...)
	}

	return expanded, nil
}

func readArgFile(path string, stack []string) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if slices.Contains(stack, abs) {
		return nil, &ArgFileError{Path: path, Err: errArgFileCycle}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArgFileError{Path: path, Err: err}
	}

	var tokens []string

	for n, line := range strings.Split(string(data), "\n") {
		words, err := SplitArgLine(strings.TrimSuffix(line, "\r"))
		if err != nil {
			return nil, &ArgFileError{Path: path, Line: n + 1, Err: err}
		}

		tokens = slices.AppendSeq(tokens, words)
	}

	return expandArgFiles(tokens, append(slices.Clip(stack), abs))
}
