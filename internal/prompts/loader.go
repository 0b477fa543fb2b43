package prompts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

func parseListCell(s string) []string {
	s = strings.ReplaceAll(s, "／", "/")
	parts := strings.Split(s, "/")
	out := []string{}
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// LoadFile reads a prompt CSV with a locale,theme,text header. A missing file
// is not an error: it yields Builtin.
func LoadFile(path string) ([]Prompt, error) {
	fp, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Builtin, nil
	}
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	ps, err := Load(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return ps, nil
}

// Load parses prompt CSV from r. Rows without text are skipped.
func Load(r io.Reader) ([]Prompt, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, errors.New("prompt csv has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["text"]; !ok {
		return nil, errors.New("prompt csv has no text column")
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []Prompt{}
	for _, row := range rows[1:] {
		p := Prompt{
			Locale: strings.ToLower(get(row, "locale")),
			Themes: parseListCell(get(row, "theme")),
			Text:   get(row, "text"),
		}
		if p.Text == "" {
			continue
		}
		if p.Locale == "" {
			p.Locale = "en"
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, errors.New("prompt csv has no prompts")
	}
	return out, nil
}
