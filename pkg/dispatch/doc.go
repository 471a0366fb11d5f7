// Package dispatch runs a program tree against parsed arguments.
//
// A program is a "program" tag whose children are "command" tags. Run picks
// the command named by the first positional argument and either invokes its
// action or renders its children, then writes the result to the output sink
// in a single write. Nothing is written when any step fails.
//
// Actions may finish synchronously or asynchronously; both are reduced to a
// Completion that the dispatcher awaits exactly once:
//
//	dispatch.Command("echo", dispatch.Go(func(ctx context.Context, rest []string, opts args.Options) (any, error) {
//		return "Echo: " + opts.String("name"), nil
//	}))
package dispatch
