package dispatch

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/wonders/pkg/args"
	"github.com/arthur-debert/wonders/pkg/element"
	"github.com/arthur-debert/wonders/pkg/errors"
	"github.com/arthur-debert/wonders/pkg/logging"
	"github.com/arthur-debert/wonders/pkg/registry"
	"github.com/arthur-debert/wonders/pkg/render"
)

// Dispatcher selects and runs one command of a program per call. It holds
// no per-run state and may be shared.
type Dispatcher struct {
	renderer *render.Renderer
	parser   args.ParserFunc
	logger   zerolog.Logger
}

// New creates a Dispatcher. Without options it renders with render's
// defaults and parses with args.Default.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		parser: args.Default,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.renderer == nil {
		d.renderer = render.New(render.WithLogger(d.logger))
	}
	if d.parser == nil {
		d.parser = args.Default
	}
	return d
}

var defaultDispatcher = New()

// Run dispatches parsed against program with the default Dispatcher.
func Run(ctx context.Context, program element.Node, parsed args.Parsed, w io.Writer) error {
	return defaultDispatcher.Run(ctx, program, parsed, w)
}

// Render parses the args attribute of root's program and runs it with the
// default Dispatcher.
func Render(ctx context.Context, root element.Node, w io.Writer) error {
	return defaultDispatcher.Render(ctx, root, w)
}

type command struct {
	name     string
	action   Action
	children []element.Node
}

// Render expands root to a program, parses its args attribute and runs it.
func (d *Dispatcher) Render(ctx context.Context, root element.Node, w io.Writer) error {
	program, err := d.program(root)
	if err != nil {
		return err
	}

	argv, err := argvOf(program)
	if err != nil {
		return err
	}

	parsed, err := d.parser(argv)
	if err != nil {
		return errors.Wrap(err, errors.ErrResolution, "failed to parse arguments").
			WithDetail("args", argv)
	}
	return d.Run(ctx, program, parsed, w)
}

// Run resolves the command named by the first positional of parsed, obtains
// its output and writes it to w in one write.
func (d *Dispatcher) Run(ctx context.Context, program element.Node, parsed args.Parsed, w io.Writer) error {
	done := logging.LogOperationStart(d.logger, "dispatch")
	defer done()

	root, err := d.program(program)
	if err != nil {
		return err
	}

	table, err := d.table(root)
	if err != nil {
		return err
	}

	name, rest, ok := parsed.Shift()
	if !ok {
		return errors.New(errors.ErrResolution, "no command given").
			WithDetail("commands", table.List())
	}

	cmd, err := table.Get(name)
	if err != nil {
		return errors.Wrapf(err, errors.ErrResolution, "unknown command %q", name).
			WithDetail("command", name).
			WithDetail("commands", table.List())
	}

	d.logger.Debug().
		Str("command", name).
		Strs("args", rest).
		Bool("handler", cmd.action != nil).
		Msg("Command resolved")

	out, err := d.output(ctx, cmd, rest, parsed.Options)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrapf(err, errors.ErrOutput, "failed to write output of %s", name).
			WithDetail("command", name)
	}
	return nil
}

func (d *Dispatcher) program(node element.Node) (element.Tag, error) {
	expanded, err := d.renderer.Expand(node)
	if err != nil {
		return element.Tag{}, err
	}
	tag, ok := expanded.(element.Tag)
	if !ok || tag.Name != element.TagProgram {
		return element.Tag{}, errors.Newf(errors.ErrConfiguration, "root is a %s, not a <%s>", describe(expanded), element.TagProgram)
	}
	return tag, nil
}

// table validates every command of program, not only the one that will run.
func (d *Dispatcher) table(program element.Tag) (registry.Registry[command], error) {
	table := registry.New[command]()

	for i, child := range program.Children {
		expanded, err := d.renderer.Expand(child)
		if err != nil {
			return nil, err
		}
		if element.KindOf(expanded) == element.KindEmpty {
			continue
		}

		tag, ok := expanded.(element.Tag)
		if !ok || tag.Name != element.TagCommand {
			return nil, errors.Newf(errors.ErrConfiguration, "program child %d is a %s, not a <%s>", i, describe(expanded), element.TagCommand).
				WithDetail("index", i)
		}

		cmd, err := commandOf(tag)
		if err != nil {
			return nil, err
		}

		if err := table.Register(cmd.name, cmd); err != nil {
			if errors.IsErrorCode(err, errors.ErrAlreadyExists) {
				return nil, errors.Wrapf(err, errors.ErrConfiguration, "duplicate command %q", cmd.name).
					WithDetail("command", cmd.name)
			}
			return nil, errors.Wrap(err, errors.ErrConfiguration, "invalid command").
				WithDetail("index", i)
		}
	}
	return table, nil
}

func commandOf(tag element.Tag) (command, error) {
	name, ok := tag.AttrString(AttrName)
	if !ok || name == "" {
		return command{}, errors.Newf(errors.ErrConfiguration, "<%s> needs a non-empty string %q attribute", element.TagCommand, AttrName)
	}

	cmd := command{name: name, children: tag.Children}

	if raw, present := tag.Attr(AttrOnAction); present && raw != nil {
		action, ok := actionOf(raw)
		if !ok {
			return command{}, errors.Newf(errors.ErrConfiguration, "command %s has an %s of unsupported type %T", name, AttrOnAction, raw).
				WithDetail("command", name)
		}
		cmd.action = action
	}

	if cmd.action == nil && !renderable(cmd.children) {
		return command{}, errors.Newf(errors.ErrConfiguration, "command %s has neither a handler nor children", name).
			WithDetail("command", name)
	}
	return cmd, nil
}

func renderable(children []element.Node) bool {
	for _, child := range children {
		if element.KindOf(child) != element.KindEmpty {
			return true
		}
	}
	return false
}

func (d *Dispatcher) output(ctx context.Context, cmd command, rest []string, opts args.Options) (string, error) {
	if cmd.action == nil {
		out, err := d.renderer.Render(element.Group(cmd.children))
		if err != nil {
			return "", err
		}
		return out, nil
	}
	return d.invoke(ctx, cmd, rest, opts)
}

// invoke calls the handler once and awaits its completion once.
func (d *Dispatcher) invoke(ctx context.Context, cmd command, rest []string, opts args.Options) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Str("command", cmd.name).Interface("panic", r).Msg("Handler panicked")
			out = ""
			err = errors.Newf(errors.ErrHandler, "command %s panicked: %v", cmd.name, r).
				WithDetail("command", cmd.name)
		}
	}()

	completion := cmd.action.Invoke(ctx, rest, opts)
	if completion == nil {
		return "", errors.Newf(errors.ErrHandler, "command %s returned no completion", cmd.name).
			WithDetail("command", cmd.name)
	}

	value, err := completion.Await(ctx)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrHandler) {
			return "", err
		}
		return "", errors.Wrapf(err, errors.ErrHandler, "command %s failed", cmd.name).
			WithDetail("command", cmd.name)
	}

	if value == nil {
		return "", nil
	}
	scalar, ok := element.ScalarOf(value)
	if !ok {
		return "", errors.Newf(errors.ErrHandler, "command %s returned a %T, want a string, number or boolean", cmd.name, value).
			WithDetail("command", cmd.name)
	}
	return scalar.String(), nil
}

func argvOf(program element.Tag) ([]string, error) {
	raw, ok := program.Attr(AttrArgs)
	if !ok || raw == nil {
		return nil, nil
	}
	argv, ok := raw.([]string)
	if !ok {
		return nil, errors.Newf(errors.ErrConfiguration, "<%s> %q attribute is a %T, want []string", element.TagProgram, AttrArgs, raw)
	}
	return argv, nil
}

func describe(n element.Node) string {
	if tag, ok := n.(element.Tag); ok {
		return "<" + tag.Name + ">"
	}
	return element.KindOf(n).String()
}
