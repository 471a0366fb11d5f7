// Package args turns raw process arguments into positionals and named
// options without requiring the options to be declared up front. The rules
// follow minimist: "--k=v", "--k v", "--no-k", "-abc", "-n5" and "--".
package args

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// Options maps option names to scalar values (string, bool, int64 or float64).
type Options map[string]any

// Get returns the raw option value.
func (o Options) Get(key string) (any, bool) {
	v, ok := o[key]
	return v, ok
}

// Has reports whether the option was given (or defaulted).
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// String returns the option as a string, "" when absent.
func (o Options) String(key string) string {
	return cast.ToString(o[key])
}

// Bool returns the option as a bool, false when absent.
func (o Options) Bool(key string) bool {
	return cast.ToBool(o[key])
}

// Int returns the option as an int, 0 when absent or not numeric.
func (o Options) Int(key string) int {
	return cast.ToInt(o[key])
}

// Float64 returns the option as a float64, 0 when absent or not numeric.
func (o Options) Float64(key string) float64 {
	return cast.ToFloat64(o[key])
}

// Keys returns the option names sorted.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parsed holds both positional arguments and option values.
type Parsed struct {
	Positionals []string
	Options     Options
}

// Shift splits off the first positional. ok is false when there is none.
func (p Parsed) Shift() (first string, rest []string, ok bool) {
	if len(p.Positionals) == 0 {
		return "", nil, false
	}
	return p.Positionals[0], p.Positionals[1:], true
}

// String provides a debug-friendly representation.
func (p Parsed) String() string {
	return fmt.Sprintf("Parsed{Positionals=%v, Options=%v}", p.Positionals, map[string]any(p.Options))
}

// ParserFunc parses raw arguments. The dispatcher accepts any ParserFunc so
// programs can bring their own parser.
type ParserFunc func(argv []string) (Parsed, error)

// Default is the ParserFunc used when none is injected.
var Default ParserFunc = func(argv []string) (Parsed, error) {
	return Parse(argv), nil
}

// Parse parses argv with an empty Spec.
func Parse(argv []string) Parsed {
	return Spec{}.Parse(argv)
}
