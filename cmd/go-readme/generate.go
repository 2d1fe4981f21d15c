// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/petar-djukic/go-readme/pkg/readme"
)

// newGenerateCmd creates the "generate" command.
func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <repo-url>",
		Short: "Generate a README for one repository",
		Long:  "Generate fetches the repository, analyzes it and writes the README to stdout or to --output.",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}

	cmd.Flags().Bool("ai", false, "Rewrite the overview and features with the AI backend")
	cmd.Flags().String("twitter", "", "Twitter handle for the social section")
	cmd.Flags().String("linkedin", "", "LinkedIn handle for the social section")
	cmd.Flags().String("coffee", "", "Buy Me a Coffee handle for the support section")
	cmd.Flags().String("name", "", "Contact name")
	cmd.Flags().String("email", "", "Contact email")
	cmd.Flags().String("portfolio", "", "Contact portfolio URL")
	cmd.Flags().StringP("output", "o", "", "Write the README to this file instead of stdout")
	cmd.Flags().Bool("preview", false, "Print the README with syntax highlighting")
	cmd.Flags().String("diff", "", "Show the changes against an existing README file")
	cmd.Flags().Bool("json", false, "Print the full result as JSON")

	return cmd
}

// runGenerate executes one generation.
func runGenerate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	output, _ := flags.GetString("output")
	preview, _ := flags.GetBool("preview")
	diffAgainst, _ := flags.GetString("diff")
	asJSON, _ := flags.GetBool("json")

	req := readme.Request{RepoURL: args[0]}
	req.AI, _ = flags.GetBool("ai")
	req.Twitter, _ = flags.GetString("twitter")
	req.LinkedIn, _ = flags.GetString("linkedin")
	req.Coffee, _ = flags.GetString("coffee")
	req.Name, _ = flags.GetString("name")
	req.Email, _ = flags.GetString("email")
	req.Portfolio, _ = flags.GetString("portfolio")

	gen, err := readme.New(configFromViper(viper.GetViper()))
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	spinner, _ := pterm.DefaultSpinner.
		WithWriter(stderr).
		WithRemoveWhenDone(true).
		Start("Analyzing " + req.RepoURL)

	res, err := gen.Generate(ctx, req)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render(readme.UserMessage(err)))
		return err
	}

	fmt.Fprintln(stderr, statusLine(res))

	stdout := cmd.OutOrStdout()
	if diffAgainst != "" {
		previous, err := readExisting(diffAgainst)
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, renderDiff(previous, res.Markdown))
	}

	switch {
	case asJSON:
		if err := printJSON(stdout, res); err != nil {
			return err
		}
	case output == "" && diffAgainst == "":
		if err := printReadme(stdout, res.Markdown, preview && isTerminal(stdout)); err != nil {
			return err
		}
	}

	if output == "" {
		return nil
	}
	if err := os.WriteFile(output, []byte(res.Markdown), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintln(stderr, okStyle.Render("wrote "+output))
	if preview && !asJSON {
		return printReadme(stdout, res.Markdown, isTerminal(stdout))
	}
	return nil
}

// readExisting returns the content of path, or "" when it does not exist.
func readExisting(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// printReadme writes doc, highlighted when color is set.
func printReadme(w io.Writer, doc string, color bool) error {
	if !color {
		_, err := io.WriteString(w, doc)
		return err
	}
	return highlightMarkdown(w, doc)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
