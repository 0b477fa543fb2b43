package poem

import imagepkg "github.com/youruser/lumenpoem/internal/image"

// Poem is a finished (or in-progress) poem ready for export.
type Poem struct {
	Title             string   `json:"title"`
	Lines             []string `json:"lines"`
	Reflection        string   `json:"reflection"`
	IncludeReflection bool     `json:"include_reflection"`
	Locale            string   `json:"locale"`
}

// New builds an exportable poem with the card title and labels of locale.
func New(lines []string, reflection string, include bool, locale string) Poem {
	return Poem{
		Title:             imagepkg.LocaleFor(locale).Title,
		Lines:             lines,
		Reflection:        reflection,
		IncludeReflection: include,
		Locale:            locale,
	}
}

func (p Poem) showReflection() bool {
	return p.IncludeReflection && p.Reflection != ""
}

func (p Poem) reflectionHeader() string {
	return imagepkg.LocaleFor(p.Locale).ReflectionHeader
}
