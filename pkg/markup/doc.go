/*
Package markup builds element trees from an XML-like source text.

	p := markup.NewParser()
	p.Register("Greeting", greeting)
	node, err := p.Parse(`<p>Hello <strong>world</strong></p><Greeting who="you"/>`)

Element names registered on the Parser become component instances, with the
element attributes as props and the element content as children. Every other
name becomes a tag; whether the renderer knows that tag is decided at render
time.

# Text

Text content follows the JSX whitespace rules: each line is trimmed, lines
that hold only whitespace are dropped and the remaining lines are joined with
a single space. Whitespace inside a line is kept.

	<p>
	  Hello
	  world
	</p>

renders the same as <p>Hello world</p>.

# Roots

A source with several top-level nodes yields a fragment; a source with none
yields an empty node.
*/
package markup
