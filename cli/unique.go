package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
)

// once holds a flag value that may be given at most once per parse.
//
// The zero value is unset. kong decodes every occurrence of a flag into the
// same per-parse value, so a second decode observes set and is rejected
// instead of overwriting the first.
type once[T any] struct {
	value T
	set   bool
}

// Decode implements kong.MapperValue.
func (o *once[T]) Decode(ctx *kong.DecodeContext) error {
	if o.set {
		return &DuplicateOptionError{Option: optionName(ctx.Value)}
	}

	var err error

	switch v := any(&o.value).(type) {
	case *string:
		*v, err = popValue(ctx)

	case *int:
		var s string
		if s, err = popValue(ctx); err == nil {
			*v, err = strconv.Atoi(s)
			if err != nil {
				err = fmt.Errorf("invalid int value: %q", s)
			}
		}

	case *[]string:
		*v, err = popKeywordValues(ctx)

	default:
		err = fmt.Errorf("unsupported unique value type %T", o.value)
	}

	if err != nil {
		return err
	}

	o.set = true

	return nil
}

// Get returns the stored value and whether one was given.
func (o once[T]) Get() (T, bool) { return o.value, o.set }

// ptr returns a pointer to a copy of the value, or nil if unset.
func (o once[T]) ptr() *T {
	if !o.set {
		return nil
	}

	v := o.value

	return &v
}

// providerSpecs accumulates the key=value tokens of each -m occurrence.
type providerSpecs struct {
	specs [][]string
}

// Decode implements kong.MapperValue.
func (p *providerSpecs) Decode(ctx *kong.DecodeContext) error {
	tokens, err := popKeywordValues(ctx)
	if err != nil {
		return err
	}

	p.specs = append(p.specs, tokens)

	return nil
}

// stdio is the conventional path for standard input and output.
const stdio = "-"

var errMissingValue = errors.New("expected one argument")

// optionName returns the long option string of the flag being decoded.
func optionName(v *kong.Value) string {
	if v == nil {
		return "argument"
	}

	return "--" + v.Name
}

// popValue consumes the single value following a flag. Unlike
// kong.Scanner.PopValue it accepts the bare "-" used for stdin and stdout.
func popValue(ctx *kong.DecodeContext) (string, error) {
	t := ctx.Scan.Peek()
	if t.IsEOL() {
		return "", errMissingValue
	}

	if s, ok := t.Value.(string); ok && !t.IsValue() && s != stdio && !isNegativeNumber(s) {
		return "", errMissingValue
	}

	ctx.Scan.Pop()

	return tokenString(t.Value), nil
}

// isNegativeNumber reports whether s reads as a negative number rather than
// a short flag. No flag in the grammar has a digit for its short name.
func isNegativeNumber(s string) bool {
	if !strings.HasPrefix(s, "-") {
		return false
	}

	_, err := strconv.ParseFloat(s, 64)

	return err == nil
}

// typedOption returns the option string used for the nth occurrence of the
// flag whose long form is long, as written in args. It falls back to long
// when the occurrence cannot be found.
func typedOption(args []string, flags []*kong.Flag, long string, nth int) string {
	name := strings.TrimPrefix(long, "--")

	i := slices.IndexFunc(flags, func(f *kong.Flag) bool { return f.Name == name })
	if i < 0 {
		return long
	}

	flag := flags[i]

	longs := []string{"--" + flag.Name}
	for _, alias := range flag.Aliases {
		longs = append(longs, "--"+alias)
	}

	var short string
	if flag.Short != 0 {
		short = "-" + string(flag.Short)
	}

	seen := 0

	for _, arg := range args {
		if arg == "--" {
			break
		}

		var opt string

		switch {
		case strings.HasPrefix(arg, "--"):
			key, _, _ := strings.Cut(arg, "=")
			if slices.Contains(longs, key) {
				opt = key
			}

		case short != "" && strings.HasPrefix(arg, short):
			opt = short
		}

		if opt == "" {
			continue
		}

		if seen++; seen == nth {
			return opt
		}
	}

	return long
}

// popKeywordValues consumes every value token following a flag, stopping at
// the next flag. At least one value is required.
func popKeywordValues(ctx *kong.DecodeContext) ([]string, error) {
	var values []string

	for _, t := range ctx.Scan.PopWhile(func(t kong.Token) bool {
		return t.IsValue()
	}) {
		// Configuration files may supply a list for a single flag.
		if list, ok := t.Value.([]any); ok {
			for _, item := range list {
				values = append(values, tokenString(item))
			}

			continue
		}

		values = append(values, tokenString(t.Value))
	}

	if len(values) == 0 {
		return nil, errors.New("expected at least one key=value argument")
	}

	return values, nil
}

func tokenString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
