// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/go-readme/pkg/readme"
)

const highlightTheme = "monokai"

// Terminal styles.
var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// statusLine summarizes a result in one line.
func statusLine(res *readme.Result) string {
	line := okStyle.Render("✓ "+res.Name) + " " + mutedStyle.Render(joinNonEmpty([]string{
		res.ProjectType,
		shortCommit(res.Commit),
		res.Elapsed.Round(time.Millisecond).String(),
	}, " · "))
	if res.Augmented {
		line += " " + mutedStyle.Render(fmt.Sprintf("ai %d tokens", res.TokensUsed.Total()))
	}
	if len(res.Partial) > 0 {
		line += "\n" + warnStyle.Render("! incomplete: "+strings.Join(res.Partial, ", "))
	}
	return line
}

func shortCommit(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// highlightMarkdown writes doc with terminal syntax highlighting.
func highlightMarkdown(w io.Writer, doc string) error {
	return quick.Highlight(w, doc, "markdown", "terminal256", highlightTheme)
}

// renderDiff returns a line diff from old to newer. Unchanged lines are
// omitted.
func renderDiff(old, newer string) string {
	if old == newer {
		return mutedStyle.Render("no changes") + "\n"
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, newer)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		var style lipgloss.Style
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, style = "+", addedStyle
		case diffmatchpatch.DiffDelete:
			prefix, style = "-", removedStyle
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(style.Render(prefix+strings.TrimSuffix(line, "\n")) + "\n")
		}
	}
	return sb.String()
}

// printJSON outputs the result as indented JSON.
func printJSON(w io.Writer, res *readme.Result) error {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
