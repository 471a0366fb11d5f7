package markup

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/wonders/pkg/element"
	"github.com/arthur-debert/wonders/pkg/errors"
	"github.com/arthur-debert/wonders/pkg/registry"
)

// wrapper lets sources with several top-level nodes parse as one document.
const wrapper = "wonders-markup"

// Parser turns markup into element trees. Register every component before
// calling Parse; Parse itself is safe for concurrent use.
type Parser struct {
	components registry.Registry[element.Component]
	logger     zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the parser logger. The default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// NewParser creates a Parser with no components registered.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		components: registry.New[element.Component](),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register makes name parse as an instance of c.
func (p *Parser) Register(name string, c element.Component) error {
	if c == nil {
		return errors.Newf(errors.ErrInvalidInput, "component %q is nil", name).
			WithDetail("name", name)
	}
	return p.components.Register(name, c)
}

// Components lists the registered component names in registration order.
func (p *Parser) Components() []string {
	return p.components.List()
}

// Parse builds the tree described by src.
func (p *Parser) Parse(src string) (element.Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<" + wrapper + ">" + src + "</" + wrapper + ">"); err != nil {
		return nil, errors.Wrap(err, errors.ErrMarkup, "malformed markup")
	}

	root := doc.Root()
	if root == nil {
		return element.Empty{}, nil
	}

	children, err := p.children(root)
	if err != nil {
		return nil, err
	}

	p.logger.Trace().Int("roots", len(children)).Msg("Markup parsed")
	return element.Group(children), nil
}

func (p *Parser) children(el *etree.Element) ([]element.Node, error) {
	var nodes []element.Node
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			node, err := p.element(t)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case *etree.CharData:
			if text := cleanText(t.Data); text != "" {
				nodes = append(nodes, element.Text(text))
			}
		}
	}
	return nodes, nil
}

func (p *Parser) element(el *etree.Element) (element.Node, error) {
	name := el.FullTag()
	if name == wrapper {
		return nil, errors.Newf(errors.ErrMarkup, "<%s> is reserved", wrapper)
	}

	children, err := p.children(el)
	if err != nil {
		return nil, err
	}

	var attrs element.Attrs
	if len(el.Attr) > 0 {
		attrs = make(element.Attrs, len(el.Attr))
		for _, a := range el.Attr {
			attrs[a.FullKey()] = a.Value
		}
	}

	if p.components.Has(name) {
		c, err := p.components.Get(name)
		if err != nil {
			return nil, err
		}
		return element.Create(c, attrs, children...), nil
	}
	return element.New(name, attrs, children...), nil
}

var (
	leadingBlanks  = regexp.MustCompile(`^ +`)
	trailingBlanks = regexp.MustCompile(` +$`)
	lineBreak      = regexp.MustCompile(`\r\n|\n|\r`)
)

// cleanText applies the JSX whitespace rules to one run of text.
func cleanText(s string) string {
	lines := lineBreak.Split(s, -1)

	lastNonEmpty := -1
	for i, line := range lines {
		if strings.Trim(line, " \t") != "" {
			lastNonEmpty = i
		}
	}

	var b strings.Builder
	for i, line := range lines {
		line = strings.ReplaceAll(line, "\t", " ")
		if i > 0 {
			line = leadingBlanks.ReplaceAllString(line, "")
		}
		if i < len(lines)-1 {
			line = trailingBlanks.ReplaceAllString(line, "")
		}
		if line == "" {
			continue
		}
		b.WriteString(line)
		if i < lastNonEmpty {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
