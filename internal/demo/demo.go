// Package demo is the sample program shipped with the wonders binary. It
// exercises every kind of command: fallback children, synchronous and
// asynchronous handlers, components and Markdown.
package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/wonders/pkg/args"
	"github.com/arthur-debert/wonders/pkg/dispatch"
	"github.com/arthur-debert/wonders/pkg/element"
)

// DeployDelay is how long the deploy command pretends to work.
var DeployDelay = 200 * time.Millisecond

// Feature is one line of the features list.
type Feature struct {
	Name        string
	Description string
}

// Features are listed by the features command.
var Features = []Feature{
	{Name: "Declarative", Description: "programs are element trees"},
	{Name: "Composable", Description: "components expand into other elements"},
	{Name: "Async", Description: "handlers may finish later, output waits for them"},
	{Name: "Plain", Description: "output is a single string written once"},
}

const about = `# wonders

Describe a command line program as a **tree of elements** and let it
dispatch itself:

- commands are elements, their children are their output
- handlers may return a value or finish asynchronously
`

// FeatureList renders Features as a bullet list.
type FeatureList struct{}

func (FeatureList) String() string { return "FeatureList" }

// Render ignores its props.
func (FeatureList) Render(element.Props) (element.Node, error) {
	items := make([]element.Node, 0, len(Features))
	for _, f := range Features {
		items = append(items, element.Li(nil,
			element.Strong(nil, element.Text(f.Name)),
			element.Text(": "+f.Description),
		))
	}
	return element.Ul(nil, items...), nil
}

// App expands to the demo program. Its "version" prop is reported by the
// version command and its "args" prop is what gets dispatched.
type App struct{}

func (App) String() string { return "App" }

func (App) Render(props element.Props) (element.Node, error) {
	v := props.String("version")
	argv, _ := props.Get("args")
	list, ok := argv.([]string)
	if argv != nil && !ok {
		return nil, fmt.Errorf("args prop is a %T, want []string", argv)
	}

	return dispatch.Program(v, list,
		dispatch.Command("beep", nil, element.Text("Beep!")),
		dispatch.Command("boop", nil, element.Strong(nil, element.Text("Boop!"))),
		dispatch.Command("num", nil, element.Int(1)),
		dispatch.Command("bool", nil, element.Bool(true)),
		dispatch.Command("echo", dispatch.Go(echo)),
		dispatch.Command("deploy", dispatch.AsyncActionFunc(deploy)),
		dispatch.Command("version", dispatch.ActionFunc(func(context.Context, []string, args.Options) (any, error) {
			return v, nil
		})),
		dispatch.Command("features", nil,
			element.P(nil, element.Em(nil, element.Text("Features"))),
			element.Create(FeatureList{}, nil),
		),
		dispatch.Command("about", nil, element.Markdown(about)),
	), nil
}

// Program returns the demo program ready for dispatch.Render.
func Program(version string, argv []string) element.Node {
	return element.Create(App{}, element.Attrs{"version": version, "args": argv})
}

func echo(_ context.Context, rest []string, opts args.Options) (any, error) {
	name := opts.String("name")
	if name == "" && len(rest) > 0 {
		name = rest[0]
	}
	return "Echo: " + name, nil
}

// deploy finishes after DeployDelay unless ctx is cancelled first.
func deploy(ctx context.Context, rest []string, opts args.Options) <-chan dispatch.Result {
	target := "app"
	if len(rest) > 0 {
		target = rest[0]
	}
	env := opts.String("env")
	if env == "" {
		env = "staging"
	}

	ch := make(chan dispatch.Result, 1)
	go func() {
		select {
		case <-time.After(DeployDelay):
			ch <- dispatch.Result{Value: fmt.Sprintf("Deployed %s to %s", target, env)}
		case <-ctx.Done():
			ch <- dispatch.Result{Err: ctx.Err()}
		}
	}()
	return ch
}
