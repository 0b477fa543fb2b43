package poem

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// ExportText renders the poem as plain text: title, lines, then the
// reflection when included.
func ExportText(p Poem) string {
	lines := []string{}
	if p.Title != "" {
		lines = append(lines, p.Title, "")
	}
	lines = append(lines, p.Lines...)
	if p.showReflection() {
		lines = append(lines, "", p.reflectionHeader(), p.Reflection)
	}
	return strings.Join(lines, "\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "|", `\|`, "~", `\~`,
)

func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(strings.TrimSpace(s))
	// a leading "-" or "+" would start a list, "=" a setext underline,
	// "1." an ordered list
	if len(s) > 0 && strings.ContainsRune("-+=", rune(s[0])) {
		s = `\` + s
	}
	if i := strings.IndexAny(s, ".)"); i > 0 && strings.Trim(s[:i], "0123456789") == "" {
		s = s[:i] + `\` + s[i:]
	}
	return s
}

// ExportMarkdown renders the poem as markdown, one hard-broken line per verse.
func ExportMarkdown(p Poem) string {
	var b strings.Builder
	if p.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(p.Title))
	}
	for i, line := range p.Lines {
		b.WriteString(escapeMarkdown(line))
		if i < len(p.Lines)-1 {
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}
	if p.showReflection() {
		fmt.Fprintf(&b, "\n---\n\n**%s**\n\n> %s\n", escapeMarkdown(p.reflectionHeader()), escapeMarkdown(p.Reflection))
	}
	return b.String()
}

// ExportHTML renders the markdown export to an HTML fragment.
func ExportHTML(p Poem) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(ExportMarkdown(p)), &buf); err != nil {
		return "", fmt.Errorf("render poem html: %w", err)
	}
	return buf.String(), nil
}
