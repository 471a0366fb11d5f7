package args

import (
	"regexp"
	"strconv"
	"strings"
)

// Spec optionally declares how some options parse. Undeclared options are
// still accepted.
type Spec struct {
	// Booleans never consume the following token as their value.
	Booleans []string
	// Strings are never converted to numbers or bools.
	Strings []string
	// Aliases lists alternative names; setting any name sets all of them.
	Aliases map[string][]string
	// Defaults are applied before parsing.
	Defaults map[string]any
}

var numberPattern = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?$|^0[xX][0-9a-fA-F]+$`)

func isNumber(s string) bool {
	return numberPattern.MatchString(s)
}

type parser struct {
	aliases map[string][]string
	bools   map[string]bool
	strs    map[string]bool
	out     Parsed
}

// Parse applies the spec to argv.
func (s Spec) Parse(argv []string) Parsed {
	p := &parser{
		aliases: make(map[string][]string),
		bools:   make(map[string]bool),
		strs:    make(map[string]bool),
		out:     Parsed{Positionals: []string{}, Options: Options{}},
	}

	for key, names := range s.Aliases {
		group := append([]string{key}, names...)
		for _, name := range group {
			p.aliases[name] = group
		}
	}
	for _, k := range s.Booleans {
		for _, name := range p.names(k) {
			p.bools[name] = true
		}
	}
	for _, k := range s.Strings {
		for _, name := range p.names(k) {
			p.strs[name] = true
		}
	}
	for k, v := range s.Defaults {
		p.set(k, v)
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			p.out.Positionals = append(p.out.Positionals, argv[i+1:]...)
			return p.out
		case strings.HasPrefix(arg, "--") && len(arg) > 2:
			i = p.long(arg[2:], argv, i)
		case strings.HasPrefix(arg, "-") && len(arg) > 1 && !isNumber(arg):
			i = p.short(arg[1:], argv, i)
		default:
			p.out.Positionals = append(p.out.Positionals, arg)
		}
	}
	return p.out
}

func (p *parser) names(key string) []string {
	if group, ok := p.aliases[key]; ok {
		return group
	}
	return []string{key}
}

func (p *parser) set(key string, v any) {
	for _, name := range p.names(key) {
		p.out.Options[name] = v
	}
}

// value converts a raw token for key: declared strings stay strings,
// "true"/"false" become bools and numeric text becomes int64 or float64.
func (p *parser) value(key, raw string) any {
	if p.strs[key] {
		return raw
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if !isNumber(raw) {
		return raw
	}
	if hex, ok := strings.CutPrefix(strings.ToLower(raw), "0x"); ok {
		if n, err := strconv.ParseInt(hex, 16, 64); err == nil {
			return n
		}
		return raw
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// flagOnly is the value of an option given without one.
func (p *parser) flagOnly(key string) any {
	if p.strs[key] {
		return ""
	}
	return true
}

func (p *parser) long(body string, argv []string, i int) int {
	if key, raw, ok := strings.Cut(body, "="); ok {
		p.set(key, p.value(key, raw))
		return i
	}
	if strings.HasPrefix(body, "no-") && len(body) > 3 {
		p.set(body[3:], false)
		return i
	}
	return p.takeNext(body, argv, i)
}

func (p *parser) short(body string, argv []string, i int) int {
	letters := []rune(body)
	for j := 0; j < len(letters)-1; j++ {
		key := string(letters[j])
		rest := string(letters[j+1:])
		if strings.HasPrefix(rest, "=") {
			p.set(key, p.value(key, rest[1:]))
			return i
		}
		if isNumber(rest) {
			p.set(key, p.value(key, rest))
			return i
		}
		p.set(key, p.flagOnly(key))
	}
	return p.takeNext(string(letters[len(letters)-1]), argv, i)
}

// takeNext lets key consume the following token unless that token is
// itself an option or key is declared boolean.
func (p *parser) takeNext(key string, argv []string, i int) int {
	if i+1 < len(argv) {
		next := argv[i+1]
		nextIsOption := strings.HasPrefix(next, "-") && len(next) > 1 && !isNumber(next)
		switch {
		case p.bools[key]:
			if next == "true" || next == "false" {
				p.set(key, next == "true")
				return i + 1
			}
		case !nextIsOption:
			p.set(key, p.value(key, next))
			return i + 1
		}
	}
	p.set(key, p.flagOnly(key))
	return i
}
