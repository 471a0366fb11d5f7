/*
Package render compiles an element tree into a single string with embedded
ANSI escape sequences.

Rendering dispatches on the node kind:

  - Empty renders as "".
  - Scalar renders as its canonical string ("1", "true", ...).
  - Instance is expanded through its component and the result is rendered
    in its place.
  - Tag renders its children in order, concatenates them and applies the
    tag's wrap function.

The built-in wrap table:

	strong   ESC[1m ... ESC[0m
	em       ESC[3m ... ESC[0m
	u        ESC[4m ... ESC[0m
	p        "\n" ... "\n"
	ul       children only
	li       "\n\t•" ...
	br       "\n" ...
	fragment children only
	md       children are Markdown, formatted by glamour

Nested formatting is plain string concatenation: every opened region closes
with its own reset, so <strong><em>X</em></strong> becomes
ESC[1m ESC[3m X ESC[0m ESC[0m. The renderer never looks at earlier output.

program and command are structural tags. They are consumed by pkg/dispatch
and rendering them inline is an error, as is any unknown tag. Rendering is
all-or-nothing: on error no partial string is returned.
*/
package render
