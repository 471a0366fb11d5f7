package dispatch_test

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/wonders/pkg/args"
	"github.com/arthur-debert/wonders/pkg/dispatch"
	"github.com/arthur-debert/wonders/pkg/element"
	"github.com/arthur-debert/wonders/pkg/errors"
	"github.com/arthur-debert/wonders/pkg/render"
)

// sink records every write it receives.
type sink struct {
	mu      sync.Mutex
	writes  []string
	onWrite func()
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.onWrite != nil {
		s.onWrite()
	}
	s.writes = append(s.writes, string(p))
	return len(p), nil
}

func (s *sink) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, stderrors.New("disk full") }

func echo(_ context.Context, _ []string, opts args.Options) (any, error) {
	return "Echo: " + opts.String("name"), nil
}

func sampleProgram() element.Tag {
	return dispatch.Program("1.0.0", nil,
		dispatch.Command("beep", nil, element.Text("Beep!")),
		dispatch.Command("boop", nil, element.Strong(nil, element.Text("Boop")), element.Text("!")),
		dispatch.Command("num", nil, element.Int(1)),
		dispatch.Command("bool", nil, element.Bool(true)),
		dispatch.Command("echo", dispatch.Go(echo)),
		dispatch.Command("list", nil,
			element.Ul(nil,
				element.Li(nil, element.Strong(nil, element.Text("foo"))),
				element.Li(nil, element.Strong(nil, element.Text("bar"))),
			),
		),
	)
}

func TestRunFallbackChildren(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{name: "single scalar child", argv: []string{"beep"}, want: "Beep!"},
		{name: "several children", argv: []string{"boop"}, want: "\x1b[1mBoop\x1b[0m!"},
		{name: "number", argv: []string{"num"}, want: "1"},
		{name: "boolean", argv: []string{"bool"}, want: "true"},
		{name: "list", argv: []string{"list"}, want: "\n\t•\x1b[1mfoo\x1b[0m\n\t•\x1b[1mbar\x1b[0m"},
		{name: "extra positionals ignored", argv: []string{"beep", "x", "--loud"}, want: "Beep!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &sink{}
			err := dispatch.Run(context.Background(), sampleProgram(), args.Parse(tt.argv), out)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, out.Writes())
		})
	}
}

func TestRunNilHandlerFallsBackToChildren(t *testing.T) {
	program := dispatch.Program("1", nil,
		dispatch.Command("beep", dispatch.ActionFunc(nil), element.Text("Beep!")),
	)

	out := &sink{}
	err := dispatch.Run(context.Background(), program, args.Parse([]string{"beep"}), out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beep!"}, out.Writes())
}

func TestRunAsyncHandler(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{name: "separate value", argv: []string{"echo", "--name", "foo"}, want: "Echo: foo"},
		{name: "value with space", argv: []string{"echo", "--name=hello world"}, want: "Echo: hello world"},
		{name: "missing option", argv: []string{"echo"}, want: "Echo: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &sink{}
			err := dispatch.Run(context.Background(), sampleProgram(), args.Parse(tt.argv), out)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, out.Writes())
		})
	}
}

func TestRunWritesAfterCompletion(t *testing.T) {
	var finished atomic.Bool
	var finishedAtWrite bool

	deploy := dispatch.Go(func(context.Context, []string, args.Options) (any, error) {
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
		return "Deployed", nil
	})
	program := dispatch.Program("1.0.0", nil, dispatch.Command("deploy", deploy))

	out := &sink{onWrite: func() { finishedAtWrite = finished.Load() }}
	err := dispatch.Run(context.Background(), program, args.Parse([]string{"deploy"}), out)

	require.NoError(t, err)
	assert.Equal(t, []string{"Deployed"}, out.Writes())
	assert.True(t, finishedAtWrite, "write happened before the handler completed")
}

func TestRunHandlerShapes(t *testing.T) {
	withArgs := element.New(element.TagCommand, element.Attrs{
		dispatch.AttrName: "count",
		dispatch.AttrOnAction: func(rest []string, _ args.Options) any {
			return len(rest)
		},
	})
	channelled := dispatch.AsyncActionFunc(func(_ context.Context, rest []string, _ args.Options) <-chan dispatch.Result {
		ch := make(chan dispatch.Result)
		go func() { ch <- dispatch.Result{Value: rest[0]} }()
		return ch
	})
	ratio := dispatch.ActionFunc(func(_ context.Context, _ []string, opts args.Options) (any, error) {
		return opts.Float64("x") * 2, nil
	})
	silent := dispatch.ActionFunc(func(context.Context, []string, args.Options) (any, error) {
		return nil, nil
	})
	scalar := dispatch.ActionFunc(func(context.Context, []string, args.Options) (any, error) {
		return element.Bool(false), nil
	})

	program := dispatch.Program("1.0.0", nil,
		withArgs,
		dispatch.Command("first", channelled),
		dispatch.Command("double", ratio),
		dispatch.Command("silent", silent),
		dispatch.Command("scalar", scalar),
	)

	tests := []struct {
		argv []string
		want string
	}{
		{argv: []string{"count", "a", "b", "c"}, want: "3"},
		{argv: []string{"first", "alpha", "beta"}, want: "alpha"},
		{argv: []string{"double", "--x", "0.75"}, want: "1.5"},
		{argv: []string{"silent"}, want: ""},
		{argv: []string{"scalar"}, want: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.argv[0], func(t *testing.T) {
			out := &sink{}
			err := dispatch.Run(context.Background(), program, args.Parse(tt.argv), out)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, out.Writes())
		})
	}
}

func TestRunOnlySelectedCommand(t *testing.T) {
	var calls atomic.Int32
	counting := dispatch.ActionFunc(func(context.Context, []string, args.Options) (any, error) {
		calls.Add(1)
		return "counted", nil
	})
	broken := element.ComponentFunc(func(element.Props) (element.Node, error) {
		return nil, stderrors.New("must not render")
	})

	program := dispatch.Program("1.0.0", nil,
		dispatch.Command("beep", nil, element.Text("Beep!")),
		dispatch.Command("count", counting),
		dispatch.Command("broken", nil, element.Create(broken, nil)),
	)

	out := &sink{}
	require.NoError(t, dispatch.Run(context.Background(), program, args.Parse([]string{"beep"}), out))
	assert.Equal(t, []string{"Beep!"}, out.Writes())
	assert.Equal(t, int32(0), calls.Load())

	out = &sink{}
	require.NoError(t, dispatch.Run(context.Background(), program, args.Parse([]string{"count"}), out))
	assert.Equal(t, []string{"counted"}, out.Writes())
	assert.Equal(t, int32(1), calls.Load())
}

func TestRunErrors(t *testing.T) {
	boom := stderrors.New("boom")
	failing := dispatch.ActionFunc(func(context.Context, []string, args.Options) (any, error) {
		return nil, boom
	})
	panicking := dispatch.ActionFunc(func(context.Context, []string, args.Options) (any, error) {
		panic("sync panic")
	})
	goPanicking := dispatch.Go(func(context.Context, []string, args.Options) (any, error) {
		panic("async panic")
	})
	closed := dispatch.AsyncActionFunc(func(context.Context, []string, args.Options) <-chan dispatch.Result {
		ch := make(chan dispatch.Result)
		close(ch)
		return ch
	})
	nilChannel := dispatch.AsyncActionFunc(func(context.Context, []string, args.Options) <-chan dispatch.Result {
		return nil
	})
	structured := dispatch.ActionFunc(func(context.Context, []string, args.Options) (any, error) {
		return map[string]int{"a": 1}, nil
	})

	tests := []struct {
		name    string
		program element.Node
		argv    []string
		code    errors.ErrorCode
	}{
		{
			name:    "root is not a program",
			program: element.P(nil, element.Text("x")),
			argv:    []string{"beep"},
			code:    errors.ErrConfiguration,
		},
		{
			name:    "root is empty",
			program: nil,
			argv:    []string{"beep"},
			code:    errors.ErrConfiguration,
		},
		{
			name: "duplicate command names",
			program: dispatch.Program("1", nil,
				dispatch.Command("beep", nil, element.Text("a")),
				dispatch.Command("beep", nil, element.Text("b")),
			),
			argv: []string{"beep"},
			code: errors.ErrConfiguration,
		},
		{
			name:    "command without name",
			program: dispatch.Program("1", nil, element.New(element.TagCommand, nil, element.Text("a"))),
			argv:    []string{"beep"},
			code:    errors.ErrConfiguration,
		},
		{
			name:    "command without handler or children",
			program: dispatch.Program("1", nil, dispatch.Command("beep", nil)),
			argv:    []string{"beep"},
			code:    errors.ErrConfiguration,
		},
		{
			name:    "nil sync handler without children",
			program: dispatch.Program("1", nil, dispatch.Command("beep", dispatch.ActionFunc(nil))),
			argv:    []string{"beep"},
			code:    errors.ErrConfiguration,
		},
		{
			name:    "nil async handler without children",
			program: dispatch.Program("1", nil, dispatch.Command("beep", dispatch.AsyncActionFunc(nil))),
			argv:    []string{"beep"},
			code:    errors.ErrConfiguration,
		},
		{
			name: "nil bare function handler",
			program: dispatch.Program("1", nil, element.New(element.TagCommand, element.Attrs{
				dispatch.AttrName:     "beep",
				dispatch.AttrOnAction: (func([]string, args.Options) any)(nil),
			})),
			argv: []string{"beep"},
			code: errors.ErrConfiguration,
		},
		{
			name:    "command with only empty children",
			program: dispatch.Program("1", nil, dispatch.Command("beep", nil, element.Empty{}, nil)),
			argv:    []string{"beep"},
			code:    errors.ErrConfiguration,
		},
		{
			name: "handler of unsupported type",
			program: dispatch.Program("1", nil, element.New(element.TagCommand, element.Attrs{
				dispatch.AttrName:     "beep",
				dispatch.AttrOnAction: "not a function",
			})),
			argv: []string{"beep"},
			code: errors.ErrConfiguration,
		},
		{
			name:    "program child is not a command",
			program: dispatch.Program("1", nil, element.Strong(nil, element.Text("x"))),
			argv:    []string{"beep"},
			code:    errors.ErrConfiguration,
		},
		{
			name: "invalid command that is not selected",
			program: dispatch.Program("1", nil,
				dispatch.Command("beep", nil, element.Text("Beep!")),
				dispatch.Command("void", nil),
			),
			argv: []string{"beep"},
			code: errors.ErrConfiguration,
		},
		{
			name:    "no command given",
			program: sampleProgram(),
			argv:    []string{"--name", "foo"},
			code:    errors.ErrResolution,
		},
		{
			name:    "unknown command",
			program: sampleProgram(),
			argv:    []string{"nope"},
			code:    errors.ErrResolution,
		},
		{
			name:    "handler error",
			program: dispatch.Program("1", nil, dispatch.Command("fail", failing)),
			argv:    []string{"fail"},
			code:    errors.ErrHandler,
		},
		{
			name:    "handler panic",
			program: dispatch.Program("1", nil, dispatch.Command("fail", panicking)),
			argv:    []string{"fail"},
			code:    errors.ErrHandler,
		},
		{
			name:    "async handler panic",
			program: dispatch.Program("1", nil, dispatch.Command("fail", goPanicking)),
			argv:    []string{"fail"},
			code:    errors.ErrHandler,
		},
		{
			name:    "channel closed without result",
			program: dispatch.Program("1", nil, dispatch.Command("fail", closed)),
			argv:    []string{"fail"},
			code:    errors.ErrHandler,
		},
		{
			name:    "nil channel",
			program: dispatch.Program("1", nil, dispatch.Command("fail", nilChannel)),
			argv:    []string{"fail"},
			code:    errors.ErrHandler,
		},
		{
			name:    "nil completion",
			program: dispatch.Program("1", nil, dispatch.Command("fail", noCompletion{})),
			argv:    []string{"fail"},
			code:    errors.ErrHandler,
		},
		{
			name:    "non scalar result",
			program: dispatch.Program("1", nil, dispatch.Command("fail", structured)),
			argv:    []string{"fail"},
			code:    errors.ErrHandler,
		},
		{
			name:    "unknown tag in children",
			program: dispatch.Program("1", nil, dispatch.Command("blink", nil, element.New("blink", nil, element.Text("x")))),
			argv:    []string{"blink"},
			code:    errors.ErrRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &sink{}
			err := dispatch.Run(context.Background(), tt.program, args.Parse(tt.argv), out)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err), err.Error())
			assert.Empty(t, out.Writes())
		})
	}
}

// noCompletion is an action that breaks the contract by returning nil.
type noCompletion struct{}

func (noCompletion) Invoke(context.Context, []string, args.Options) dispatch.Completion {
	return nil
}

func TestRunHandlerErrorKeepsCause(t *testing.T) {
	cause := errors.New(errors.ErrInvalidInput, "bad target")
	failing := dispatch.ActionFunc(func(context.Context, []string, args.Options) (any, error) {
		return nil, cause
	})
	program := dispatch.Program("1", nil, dispatch.Command("deploy", failing))

	err := dispatch.Run(context.Background(), program, args.Parse([]string{"deploy"}), &sink{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHandler))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "deploy", errors.GetErrorDetails(err)["command"])
}

func TestRunResolutionDetails(t *testing.T) {
	err := dispatch.Run(context.Background(), sampleProgram(), args.Parse([]string{"nope"}), &sink{})
	require.Error(t, err)
	details := errors.GetErrorDetails(err)
	assert.Equal(t, "nope", details["command"])
	assert.Equal(t, []string{"beep", "boop", "num", "bool", "echo", "list"}, details["commands"])
}

func TestRunCancelledWhileAwaiting(t *testing.T) {
	never := dispatch.AsyncActionFunc(func(context.Context, []string, args.Options) <-chan dispatch.Result {
		return make(chan dispatch.Result)
	})
	program := dispatch.Program("1", nil, dispatch.Command("wait", never))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	out := &sink{}
	err := dispatch.Run(ctx, program, args.Parse([]string{"wait"}), out)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHandler))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.Writes())
}

func TestRunWriteFailure(t *testing.T) {
	err := dispatch.Run(context.Background(), sampleProgram(), args.Parse([]string{"beep"}), brokenWriter{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutput))
}

func TestRunExpandsComponents(t *testing.T) {
	beep := element.ComponentFunc(func(element.Props) (element.Node, error) {
		return dispatch.Command("beep", nil, element.Text("Beep!")), nil
	})
	greeting := element.ComponentFunc(func(p element.Props) (element.Node, error) {
		return element.Em(nil, element.Text("Hello, "+p.String("who"))), nil
	})
	app := element.ComponentFunc(func(element.Props) (element.Node, error) {
		return dispatch.Program("1", nil,
			element.Create(beep, nil),
			nil,
			dispatch.Command("hello", nil, element.Create(greeting, element.Attrs{"who": "world"})),
		), nil
	})

	out := &sink{}
	require.NoError(t, dispatch.Run(context.Background(), element.Create(app, nil), args.Parse([]string{"beep"}), out))
	assert.Equal(t, []string{"Beep!"}, out.Writes())

	out = &sink{}
	require.NoError(t, dispatch.Run(context.Background(), element.Create(app, nil), args.Parse([]string{"hello"}), out))
	assert.Equal(t, []string{"\x1b[3mHello, world\x1b[0m"}, out.Writes())
}

func TestRender(t *testing.T) {
	app := element.ComponentFunc(func(element.Props) (element.Node, error) {
		return dispatch.Program("1.0.0", []string{"echo", "--name", "foo"},
			dispatch.Command("echo", dispatch.Go(echo)),
		), nil
	})

	out := &sink{}
	require.NoError(t, dispatch.Render(context.Background(), element.Create(app, nil), out))
	assert.Equal(t, []string{"Echo: foo"}, out.Writes())
}

func TestRenderErrors(t *testing.T) {
	t.Run("args of wrong type", func(t *testing.T) {
		program := element.New(element.TagProgram, element.Attrs{dispatch.AttrArgs: "beep"},
			dispatch.Command("beep", nil, element.Text("Beep!")))
		err := dispatch.Render(context.Background(), program, &sink{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfiguration))
	})

	t.Run("no args", func(t *testing.T) {
		program := dispatch.Program("1", nil, dispatch.Command("beep", nil, element.Text("Beep!")))
		err := dispatch.Render(context.Background(), program, &sink{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrResolution))
	})

	t.Run("parser failure", func(t *testing.T) {
		d := dispatch.New(dispatch.WithParser(func([]string) (args.Parsed, error) {
			return args.Parsed{}, stderrors.New("bad flag")
		}))
		program := dispatch.Program("1", []string{"beep"}, dispatch.Command("beep", nil, element.Text("Beep!")))
		out := &sink{}
		err := d.Render(context.Background(), program, out)
		assert.True(t, errors.IsErrorCode(err, errors.ErrResolution))
		assert.Empty(t, out.Writes())
	})
}

func TestDispatcherOptions(t *testing.T) {
	parser := func(argv []string) (args.Parsed, error) {
		return args.Parsed{Positionals: []string{"beep"}, Options: args.Options{}}, nil
	}
	d := dispatch.New(
		dispatch.WithParser(parser),
		dispatch.WithRenderer(render.New(render.WithProfile(termenv.Ascii))),
	)
	program := dispatch.Program("1", []string{"ignored"},
		dispatch.Command("beep", nil, element.Strong(nil, element.Text("Beep!"))),
	)

	out := &sink{}
	require.NoError(t, d.Render(context.Background(), program, out))
	assert.Equal(t, []string{"Beep!"}, out.Writes())
}
