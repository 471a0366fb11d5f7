package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/wonders/pkg/element"
)

// WrapFunc turns a tag's concatenated, already rendered children into the
// tag's output.
type WrapFunc func(children string) (string, error)

// DefaultBullet prefixes every list item.
const DefaultBullet = "•"

// structuralTags are consumed by the dispatcher and never rendered inline.
var structuralTags = map[string]bool{
	element.TagProgram: true,
	element.TagCommand: true,
}

// styled wraps children in a termenv style. With the Ascii profile termenv
// returns the text untouched.
func styled(profile termenv.Profile, apply func(termenv.Style) termenv.Style) WrapFunc {
	return func(children string) (string, error) {
		return apply(profile.String()).Styled(children), nil
	}
}

func affix(prefix, suffix string) WrapFunc {
	return func(children string) (string, error) {
		return prefix + children + suffix, nil
	}
}

func passThrough(children string) (string, error) {
	return children, nil
}

// markdown renders children as Markdown. The glamour renderer is built on
// first use so trees without md tags never pay for it.
func markdown(profile termenv.Profile, style string, width int) WrapFunc {
	var (
		once sync.Once
		tr   *glamour.TermRenderer
		err  error
	)
	return func(children string) (string, error) {
		once.Do(func() {
			opts := []glamour.TermRendererOption{
				glamour.WithStandardStyle(style),
				glamour.WithColorProfile(profile),
			}
			if width > 0 {
				opts = append(opts, glamour.WithWordWrap(width))
			}
			tr, err = glamour.NewTermRenderer(opts...)
		})
		if err != nil {
			return "", err
		}
		return tr.Render(children)
	}
}

// builtinTags compiles the built-in table for one renderer configuration.
func builtinTags(cfg config) map[string]WrapFunc {
	return map[string]WrapFunc{
		element.TagStrong:    styled(cfg.profile, termenv.Style.Bold),
		element.TagEm:        styled(cfg.profile, termenv.Style.Italic),
		element.TagUnderline: styled(cfg.profile, termenv.Style.Underline),
		element.TagP:         affix("\n", "\n"),
		element.TagUl:        passThrough,
		element.TagLi:        affix("\n\t"+cfg.bullet, ""),
		element.TagBr:        affix("\n", ""),
		element.TagFragment:  passThrough,
		element.TagMarkdown:  markdown(cfg.profile, cfg.markdownStyle, cfg.markdownWidth),
	}
}
