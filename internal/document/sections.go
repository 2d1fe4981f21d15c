// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package document

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/petar-djukic/go-readme/internal/techstack"
)

const (
	headingTOC          = "📋 Table of Contents"
	headingOverview     = "📖 Overview"
	headingSocial       = "🔗 Connect with me"
	headingFeatures     = "✨ Features"
	headingTechStack    = "🛠️ Tech Stack"
	headingLanguages    = "📊 Languages Used"
	headingInstallation = "⚙️ Installation"
	headingUsage        = "🚀 Usage"
	headingStructure    = "📂 Project Structure"
	headingComponents   = "🧩 Key Components"
	headingLicense      = "📜 License"
	headingReleases     = "🏷️ Latest Releases"
	headingContributors = "👥 Contributors"
	headingContributing = "🤝 Contributing"
	headingContact      = "📫 Contact"
	headingSupport      = "🙏 Support"
)

const (
	defaultTitle = "My Project"
	closingNote  = "---\n\n*This README was automatically generated. Feel free to edit and improve!*"
)

func heading(h string) string { return "## " + h }

// Title turns a repository name into a display title: hyphens and
// underscores become spaces and each word is capitalized.
func Title(name string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(name))
	if len(words) == 0 {
		return defaultTitle
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// Anchor returns the GitHub-style fragment for a heading.
func Anchor(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return "#" + b.String()
}

func buildTitle(d Data) string {
	return "# " + Title(d.Name)
}

func buildBadges(d Data) string {
	var badges []string
	for _, b := range d.Stack.Badges {
		badges = append(badges, b.Markdown())
	}
	if m := d.Metadata; m != nil {
		if m.License != "" {
			badges = append(badges, fmt.Sprintf("![License](https://img.shields.io/badge/license-%s-blue)",
				techstack.EscapeBadgeText(m.License)))
		}
		if m.FullName != "" {
			badges = append(badges,
				fmt.Sprintf("![Stars](https://img.shields.io/github/stars/%s?style=social)", m.FullName),
				fmt.Sprintf("![Forks](https://img.shields.io/github/forks/%s?style=social)", m.FullName))
		}
	}
	return strings.Join(badges, " ")
}

// buildTOC lists every titled section that renders for d.
func buildTOC(d Data) string {
	lines := []string{heading(headingTOC), ""}
	for _, s := range Sections() {
		if s.Heading == "" || s.Build(d) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- [%s](%s)", tocLabel(s.Heading), Anchor(s.Heading)))
	}
	return strings.Join(lines, "\n")
}

// tocLabel drops the leading emoji from a heading.
func tocLabel(h string) string {
	if i := strings.IndexByte(h, ' '); i >= 0 {
		return h[i+1:]
	}
	return h
}

func buildOverview(d Data) string {
	return heading(headingOverview) + "\n\n" + d.Narrative.Overview
}

func buildSocial(d Data) string {
	var links []string
	if d.Social.Twitter != "" {
		links = append(links, fmt.Sprintf("[Twitter](https://twitter.com/%s)", d.Social.Twitter))
	}
	if d.Social.LinkedIn != "" {
		links = append(links, fmt.Sprintf("[LinkedIn](https://www.linkedin.com/in/%s)", d.Social.LinkedIn))
	}
	if len(links) == 0 {
		return ""
	}
	return heading(headingSocial) + "\n\n" + strings.Join(links, " | ")
}

func buildFeatures(d Data) string {
	lines := []string{heading(headingFeatures), ""}
	for _, f := range d.Narrative.Features {
		lines = append(lines, featureLine(f))
	}
	if len(d.Narrative.Features) == 0 {
		lines = append(lines, "- Describe the key features of your project here.")
	}
	return strings.Join(lines, "\n")
}

func featureLine(f string) string {
	if label, desc, ok := strings.Cut(f, ":"); ok {
		return fmt.Sprintf("- ✅ **%s**: %s", strings.TrimSpace(label), strings.TrimSpace(desc))
	}
	return "- ✅ " + f
}

var stackLine = regexp.MustCompile(`^- \*\*(.+?):\*\* (.+)$`)

// buildTechStack renders each tech-stack line with a badge per value. The
// label and values are recovered from the rendered text line.
func buildTechStack(d Data) string {
	lines := []string{heading(headingTechStack), ""}
	text := d.Stack.Text()
	if text == "" {
		lines = append(lines, "- *No technologies detected. You can add frameworks or databases here.*")
		return strings.Join(lines, "\n")
	}

	for _, row := range strings.Split(text, "\n") {
		m := stackLine.FindStringSubmatch(row)
		if m == nil {
			lines = append(lines, row)
			continue
		}
		var badges []string
		for _, v := range strings.Split(m[2], ", ") {
			badges = append(badges, techstack.LookupBadge(v).Markdown())
		}
		lines = append(lines, fmt.Sprintf("- **%s:** %s", m[1], strings.Join(badges, " ")))
	}
	return strings.Join(lines, "\n")
}

func buildLanguages(d Data) string {
	lines := []string{heading(headingLanguages), ""}
	if len(d.Languages) == 0 {
		lines = append(lines, "No recognized source languages were detected.")
		return strings.Join(lines, "\n")
	}

	var badges []string
	for _, l := range d.Languages {
		style := techstack.LookupBadge(l.Name)
		pct := fmt.Sprintf("%.1f%%", l.Percentage)
		badges = append(badges, fmt.Sprintf(
			"![%s](https://img.shields.io/badge/%s-%s-%s?style=for-the-badge&logo=%s&logoColor=white)",
			l.Name, techstack.EscapeBadgeText(l.Name), techstack.EscapeBadgeText(pct), style.Color, style.Logo))
	}
	lines = append(lines, strings.Join(badges, " "))
	return strings.Join(lines, "\n")
}

func buildInstallation(d Data) string {
	var b strings.Builder
	b.WriteString(heading(headingInstallation))
	b.WriteString("\n\n### Prerequisites\n\n")
	for _, p := range techstack.Prerequisites(d.Stack.PrimaryLanguage) {
		b.WriteString("- " + p + "\n")
	}

	b.WriteString("\n### Setup\n\n")
	b.WriteString("1. **Clone the repository:**\n\n")
	b.WriteString("```bash\n")
	b.WriteString("git clone " + cloneURL(d) + "\n")
	b.WriteString("cd " + dirName(d.Name) + "\n")
	b.WriteString("```\n\n")
	b.WriteString("2. **Install dependencies:**\n\n")
	b.WriteString("```bash\n")
	b.WriteString(d.Instructions.Setup + "\n")
	b.WriteString("```")
	return b.String()
}

func buildUsage(d Data) string {
	return heading(headingUsage) + "\n\nUse the following command to run the project:\n\n```bash\n" +
		d.Instructions.Run + "\n```"
}

func buildStructure(d Data) string {
	var b strings.Builder
	b.WriteString(heading(headingStructure))
	b.WriteString("\n\nA brief overview of the key files and directories:\n\n```\n")
	b.WriteString(dirName(d.Name) + "/\n")
	for _, f := range d.Inventory {
		b.WriteString("├── " + f + "\n")
	}
	b.WriteString("└── ...\n```")
	return b.String()
}

func buildKeyComponents(d Data) string {
	if len(d.KeyComponents) == 0 {
		return ""
	}
	lines := []string{heading(headingComponents), ""}
	for _, c := range d.KeyComponents {
		line := fmt.Sprintf("- `%s`", c.FilePath)
		if len(c.Symbols) > 0 {
			line += ": " + strings.Join(c.Symbols, ", ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func buildLicense(d Data) string {
	text := d.License
	if text == "" {
		text = NoLicense
	}
	return heading(headingLicense) + "\n\n" + text
}

func buildReleases(d Data) string {
	if d.Metadata == nil || len(d.Metadata.Releases) == 0 {
		return ""
	}
	lines := []string{heading(headingReleases), ""}
	for _, r := range d.Metadata.Releases {
		line := fmt.Sprintf("- **%s**", r.TagName)
		if r.Name != "" && r.Name != r.TagName {
			line += " " + r.Name
		}
		if !r.PublishedAt.IsZero() {
			line += " (" + r.PublishedAt.Format("2006-01-02") + ")"
		}
		if body := strings.Join(strings.Fields(r.Body), " "); body != "" {
			line += ": " + body
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func buildContributors(d Data) string {
	if d.Metadata == nil || len(d.Metadata.Contributors) == 0 {
		return ""
	}
	lines := []string{
		heading(headingContributors), "",
		"Thanks to these wonderful people who have contributed to this project!", "",
	}
	for _, c := range d.Metadata.Contributors {
		lines = append(lines, fmt.Sprintf(
			`<a href="%s"><img src="%s.png?size=50" width="50" height="50" alt="%s" style="border-radius: 50%%;"></a>`,
			c.URL, c.URL, c.Login))
	}
	return strings.Join(lines, "\n")
}

func buildContributing(Data) string {
	return heading(headingContributing) + `

Contributions are what make the open-source community such an amazing place to learn, inspire, and create. Any contributions you make are **greatly appreciated**.

1. Fork the Project
2. Create your Feature Branch (` + "`git checkout -b feature/AmazingFeature`" + `)
3. Commit your Changes (` + "`git commit -m 'Add some AmazingFeature'`" + `)
4. Push to the Branch (` + "`git push origin feature/AmazingFeature`" + `)
5. Open a Pull Request`
}

func buildContact(d Data) string {
	c := d.Contact
	if c.Name == "" && c.Email == "" && c.Portfolio == "" {
		return ""
	}
	lines := []string{heading(headingContact), ""}
	if c.Name != "" {
		lines = append(lines, "**"+c.Name+"**", "")
	}
	if c.Email != "" {
		lines = append(lines, "📧 "+c.Email, "")
	}
	if c.Portfolio != "" {
		lines = append(lines, fmt.Sprintf("🌐 [%s](%s)", c.Portfolio, c.Portfolio), "")
	}
	if d.URL != "" {
		lines = append(lines, fmt.Sprintf("🔗 Project Link: [%s](%s)", d.URL, d.URL))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func buildSupport(d Data) string {
	if d.Coffee == "" {
		return ""
	}
	return heading(headingSupport) + "\n\nIf you like this project, please consider supporting me.\n\n" +
		fmt.Sprintf(`<a href="https://www.buymeacoffee.com/%s" target="_blank"><img src="https://cdn.buymeacoffee.com/buttons/v2/default-yellow.png" alt="Buy Me A Coffee" style="height: 60px !important;width: 217px !important;" ></a>`, d.Coffee)
}

func buildClosing(Data) string {
	return closingNote
}

func cloneURL(d Data) string {
	switch {
	case d.URL != "":
		return strings.TrimSuffix(d.URL, ".git") + ".git"
	case d.Metadata != nil && d.Metadata.FullName != "":
		return "https://github.com/" + d.Metadata.FullName + ".git"
	default:
		return "<repository-url>"
	}
}

func dirName(name string) string {
	if name == "" {
		return "project"
	}
	return name
}
