package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cast"

	"github.com/arthur-debert/wonders/pkg/errors"
)

var errorTitles = map[errors.ErrorCode]string{
	errors.ErrConfiguration: "Invalid program",
	errors.ErrResolution:    "Unknown command",
	errors.ErrHandler:       "Command failed",
	errors.ErrRender:        "Cannot render output",
	errors.ErrOutput:        "Cannot write output",
	errors.ErrMarkup:        "Invalid markup",
	errors.ErrConfigLoad:    "Cannot read settings",
	errors.ErrConfigParse:   "Cannot parse settings",
	errors.ErrConfigInvalid: "Invalid settings",
	errors.ErrInvalidInput:  "Invalid input",
	errors.ErrNotFound:      "Not found",
}

// FormatError creates a styled, human readable report of err. With the
// Ascii profile the report is plain text.
func FormatError(err error, profile termenv.Profile) string {
	if err == nil {
		return ""
	}

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	headerStyle := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("196"))

	labelStyle := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214"))

	valueStyle := r.NewStyle().
		Foreground(lipgloss.Color("245"))

	hintStyle := r.NewStyle().
		Foreground(lipgloss.Color("242")).
		Italic(true)

	var (
		title   = "Error"
		message = err.Error()
		details map[string]interface{}
		code    errors.ErrorCode
		werr    *errors.WondersError
	)
	if stderrors.As(err, &werr) {
		code = werr.Code
		message = werr.Message
		if werr.Wrapped != nil {
			message += ": " + werr.Wrapped.Error()
		}
		details = werr.Details
		if t, ok := errorTitles[code]; ok {
			title = t
		}
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("✗ " + title))
	sb.WriteString("\n\n")
	sb.WriteString(message)
	sb.WriteString("\n")

	keys := make([]string, 0, len(details))
	for k := range details {
		if k == "commands" || k == "topics" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		sb.WriteString("\n")
		for _, k := range keys {
			sb.WriteString(labelStyle.Render(fmt.Sprintf("  %s:", k)))
			sb.WriteString(" ")
			sb.WriteString(valueStyle.Render(fmt.Sprint(details[k])))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render(hint(code, details)))
	sb.WriteString("\n")
	return sb.String()
}

func hint(code errors.ErrorCode, details map[string]interface{}) string {
	switch code {
	case errors.ErrResolution:
		if commands := cast.ToStringSlice(details["commands"]); len(commands) > 0 {
			return "Available commands: " + strings.Join(commands, ", ")
		}
	case errors.ErrNotFound:
		if topics := cast.ToStringSlice(details["topics"]); len(topics) > 0 {
			return "Help topics: " + strings.Join(topics, ", ")
		}
	case errors.ErrConfigLoad, errors.ErrConfigParse, errors.ErrConfigInvalid:
		return "Check the settings file and the WONDERS_* environment variables."
	case errors.ErrMarkup:
		return "Markup must be well formed XML: close every element and escape < and &."
	}
	return "Run the command with --help for usage information."
}
