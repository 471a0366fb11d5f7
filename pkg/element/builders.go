package element

// Built-in tag names.
const (
	TagProgram   = "program"
	TagCommand   = "command"
	TagFragment  = "fragment"
	TagStrong    = "strong"
	TagEm        = "em"
	TagUnderline = "u"
	TagP         = "p"
	TagUl        = "ul"
	TagLi        = "li"
	TagBr        = "br"
	TagMarkdown  = "md"
)

// New builds a tag.
func New(name string, attrs Attrs, children ...Node) Tag {
	return Tag{Name: name, Attrs: attrs, Children: children}
}

// Create instantiates a component. The children always end up in the props.
func Create(c Component, attrs Attrs, children ...Node) Instance {
	return Instance{
		Component: c,
		Props:     Props{Attrs: attrs, Children: children},
	}
}

// Group turns a child sequence into one node: Empty, the single child, or an
// implicit fragment.
func Group(children []Node) Node {
	switch len(children) {
	case 0:
		return Empty{}
	case 1:
		if children[0] == nil {
			return Empty{}
		}
		return children[0]
	default:
		return Fragment(children...)
	}
}

func Fragment(children ...Node) Tag { return New(TagFragment, nil, children...) }

func Strong(attrs Attrs, children ...Node) Tag { return New(TagStrong, attrs, children...) }

func Em(attrs Attrs, children ...Node) Tag { return New(TagEm, attrs, children...) }

func Underline(attrs Attrs, children ...Node) Tag { return New(TagUnderline, attrs, children...) }

func P(attrs Attrs, children ...Node) Tag { return New(TagP, attrs, children...) }

func Ul(attrs Attrs, children ...Node) Tag { return New(TagUl, attrs, children...) }

func Li(attrs Attrs, children ...Node) Tag { return New(TagLi, attrs, children...) }

func Br() Tag { return New(TagBr, nil) }

// Markdown wraps Markdown source; the renderer formats it for the terminal.
func Markdown(source string) Tag { return New(TagMarkdown, nil, Text(source)) }
