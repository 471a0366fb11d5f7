/*
Package element is the in-memory model of a wonders program: a closed set of
node variants the renderer and the dispatcher consume.

# Node kinds

  - Empty: the absence of a node. A nil Node is treated the same way.
  - Scalar: a string, integer, float or bool leaf.
  - Tag: a built-in element (program, command, strong, em, p, ul, li, ...)
    with attributes and ordered children.
  - Instance: a user Component plus the props it was instantiated with,
    not yet expanded.

The Node interface is sealed; code outside this package switches on the
concrete types (or on Kind) and can rely on the switch being exhaustive.

# Building trees

Trees are plain values, built fresh for every render:

	tree := element.Ul(nil,
		element.Li(nil, element.Strong(nil, element.Text("foo"))),
		element.Li(nil, element.Strong(nil, element.Text("bar"))),
	)

User components implement Component and are instantiated with Create:

	greeting := element.ComponentFunc(func(p element.Props) (element.Node, error) {
		return element.Text("Hello, " + p.String("name")), nil
	})
	node := element.Create(greeting, element.Attrs{"name": "world"})

Nothing in this package renders; see pkg/render and pkg/dispatch.
*/
package element
