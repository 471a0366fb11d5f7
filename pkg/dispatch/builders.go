package dispatch

import (
	"github.com/arthur-debert/wonders/pkg/element"
)

// Attribute keys read by the dispatcher.
const (
	AttrVersion  = "version"
	AttrArgs     = "args"
	AttrName     = "name"
	AttrOnAction = "onAction"
)

// Program builds a program tag. argv is what Render hands to the parser.
func Program(version string, argv []string, commands ...element.Node) element.Tag {
	return element.New(element.TagProgram, element.Attrs{
		AttrVersion: version,
		AttrArgs:    argv,
	}, commands...)
}

// Command builds a command tag. action may be nil, in which case the
// children are rendered when the command is selected.
func Command(name string, action Action, children ...element.Node) element.Tag {
	attrs := element.Attrs{AttrName: name}
	if action != nil {
		attrs[AttrOnAction] = action
	}
	return element.New(element.TagCommand, attrs, children...)
}
