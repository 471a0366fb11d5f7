// Package topics adds help topics to a Cobra command tree. Topics are files
// in an fs.FS (usually embedded) that `help <topic>` renders alongside the
// usual command help.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/wonders/pkg/errors"
)

// ListKeyword is the help argument that lists every topic.
const ListKeyword = "topics"

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	fsys       fs.FS
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Topic represents a help topic
type Topic struct {
	Name    string
	Path    string
	Format  string
	Content string
}

// Options configures the TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics.
	// Defaults to [".md", ".txt"].
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// New creates a TopicManager reading topics from fsys and loads them
func New(fsys fs.FS, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".md", ".txt"}
	}
	if tm.renderer == nil {
		tm.renderer = PlainRenderer{}
	}

	if err := tm.scanTopics(); err != nil {
		return nil, err
	}
	return tm, nil
}

func (tm *TopicManager) scanTopics() error {
	err := fs.WalkDir(tm.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !tm.supported(ext) {
			return nil
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		if prev, exists := tm.topics[name]; exists {
			return errors.Newf(errors.ErrAlreadyExists, "help topic %q is defined twice", name).
				WithDetail("paths", []string{prev.Path, p})
		}

		content, err := fs.ReadFile(tm.fsys, p)
		if err != nil {
			return err
		}
		tm.topics[name] = &Topic{
			Name:    name,
			Path:    p,
			Format:  ext,
			Content: string(content),
		}
		return nil
	})
	if err != nil && !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
		return errors.Wrap(err, errors.ErrInternal, "failed to scan help topics")
	}
	return err
}

func (tm *TopicManager) supported(ext string) bool {
	for _, valid := range tm.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// GetTopic retrieves a topic by name
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	// Flag-style names (--color -> color, or option-color)
	name = strings.TrimLeft(name, "-")

	if topic, exists := tm.topics[name]; exists {
		return topic, true
	}
	topic, exists := tm.topics["option-"+name]
	return topic, exists
}

// ListTopics returns all topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic with the configured renderer
func (tm *TopicManager) Render(topic *Topic) (string, error) {
	out, err := tm.renderer.Render(topic.Content, topic.Format)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRender, "cannot render help topic %q", topic.Name).
			WithDetail("path", topic.Path)
	}
	return out, nil
}

// WriteList prints the topic index for the program named prog
func (tm *TopicManager) WriteList(w io.Writer, prog string) error {
	names := tm.ListTopics()
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}

	var general, options []string
	for _, name := range names {
		if opt, ok := strings.CutPrefix(name, "option-"); ok {
			options = append(options, "--"+opt)
		} else {
			general = append(general, name)
		}
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	if len(general) > 0 {
		b.WriteString("\nGeneral topics:\n")
		for _, name := range general {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		b.WriteString("\nOption topics:\n")
		for _, name := range options {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", prog)

	_, err := io.WriteString(w, b.String())
	return err
}

// Install replaces rootCmd's help command with one that also knows the
// topics in tm. Unknown names fall back to the usual command help.
func Install(rootCmd *cobra.Command, tm *TopicManager) {
	originalHelp := rootCmd.HelpFunc()

	show := func(cmd *cobra.Command, name string) (bool, error) {
		topic, exists := tm.GetTopic(name)
		if !exists {
			return false, nil
		}
		out, err := tm.Render(topic)
		if err != nil {
			return true, err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return true, err
	}

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help ` + ListKeyword,
		// Topic names may look like flags (help --color).
		DisableFlagParsing: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{ListKeyword}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				originalHelp(rootCmd, nil)
				return nil
			}
			if args[0] == ListKeyword {
				return tm.WriteList(cmd.OutOrStdout(), rootCmd.Name())
			}
			if shown, err := show(cmd, args[0]); shown {
				return err
			}

			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil {
				return errors.Newf(errors.ErrNotFound, "unknown help topic %q", strings.Join(args, " ")).
					WithDetail("topics", tm.ListTopics())
			}
			originalHelp(target, args)
			return nil
		},
	}

	rootCmd.SetHelpCommand(helpCmd)
}
