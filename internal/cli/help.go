package cli

import (
	"embed"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/wonders/internal/demo"
	"github.com/arthur-debert/wonders/pkg/cobrax/topics"
	"github.com/arthur-debert/wonders/pkg/element"
	"github.com/arthur-debert/wonders/pkg/errors"
	"github.com/arthur-debert/wonders/pkg/logging"
	"github.com/arthur-debert/wonders/pkg/markup"
)

//go:embed topics
var topicFiles embed.FS

// installTopics adds the embedded help topics to rootCmd. Markdown topics
// go through the markdown tag, markup topics through the markup parser.
func installTopics(rootCmd *cobra.Command, opts *options) error {
	fsys, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot open help topics")
	}

	render := func(content, format string) (string, error) {
		node, err := topicNode(content, format)
		if err != nil {
			return "", err
		}
		return opts.renderer(rootCmd.OutOrStdout()).Render(node)
	}

	tm, err := topics.New(fsys, topics.Options{
		Extensions: []string{".md", ".xml"},
		Renderer:   topics.RendererFunc(render),
	})
	if err != nil {
		return err
	}
	topics.Install(rootCmd, tm)
	return nil
}

func topicNode(content, format string) (element.Node, error) {
	if format == ".md" {
		return element.Markdown(content), nil
	}
	return newMarkupParser().Parse(content)
}

// newMarkupParser returns a parser that knows the sample components.
func newMarkupParser() *markup.Parser {
	parser := markup.NewParser(markup.WithLogger(logging.GetLogger("markup")))
	if err := parser.Register("FeatureList", demo.FeatureList{}); err != nil {
		panic(err)
	}
	return parser
}

// writeString writes out to w as a single write.
func writeString(w io.Writer, out string) error {
	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrap(err, errors.ErrOutput, "failed to write output")
	}
	return nil
}
