package prompts

import (
	"math/rand"
	"strings"
)

type FilterOptions struct {
	Locales   []string
	Themes    []string
	FreeWords string
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.Contains(h, strings.ToLower(n)) {
				return true
			}
		}
	}
	return false
}

func Filter(prompts []Prompt, opt FilterOptions) []Prompt {
	var out []Prompt
	for _, p := range prompts {
		if len(opt.Locales) > 0 {
			matched := false
			for _, l := range opt.Locales {
				if strings.EqualFold(p.Locale, l) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if len(opt.Themes) > 0 && !containsAny(p.Themes, opt.Themes) {
			continue
		}
		if opt.FreeWords != "" {
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				k = strings.ToLower(k)
				if !strings.Contains(strings.ToLower(p.Text), k) &&
					!strings.Contains(strings.Join(p.Themes, " "), k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Pick returns a random prompt text, avoiding previous when another choice
// exists. It returns "" for an empty deck.
func Pick(prompts []Prompt, previous string, rnd *rand.Rand) string {
	if len(prompts) == 0 {
		return ""
	}
	candidates := prompts
	if len(prompts) > 1 {
		candidates = make([]Prompt, 0, len(prompts))
		for _, p := range prompts {
			if p.Text != previous {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			candidates = prompts
		}
	}
	return candidates[rnd.Intn(len(candidates))].Text
}
