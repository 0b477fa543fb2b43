package guide

import (
	"fmt"
	"strings"
)

const (
	guidanceTemperature = 0.8
	guidanceMaxTokens   = 100
	visualsTemperature  = 0.5
	visualsMaxTokens    = 50
)

type localeText struct {
	initial   string
	fallback  string
	notYet    string
	system    string
	retry     string
	userFrame string
}

var texts = map[string]localeText{
	"en": {
		initial:  "Let your breath settle lightly, like a feather, upon your awareness right now...",
		fallback: "Breathe deeply, and feel the stillness of this moment...",
		notYet:   "(User has not started yet)",
		system: "You are a gentle, poetic therapist. Based on the user's poem lines, " +
			"provide a short (under 30 words) metaphorical writing prompt in English. " +
			"Guide the user to notice their body sensations (breath, heartbeat, touch) " +
			"or subtle environmental changes (light, sound). " +
			"Tone: extremely gentle, soothing, and lyrical. Do not use quotation marks.",
		retry:     " The user wants a different perspective or metaphor.",
		userFrame: "User's current poem:\n%s\n\nPlease provide the next guidance prompt:",
	},
	"zh": {
		initial:  "让呼吸像一片羽毛，轻轻落在此刻的觉察上……",
		fallback: "深深地呼吸，感受这一刻的宁静……",
		notYet:   "（用户还没有开始写）",
		system: "你是一位温柔而富有诗意的疗愈师。请根据用户已写下的诗句，" +
			"用中文给出一句简短（30字以内）、带有隐喻的写作引导。" +
			"引导用户留意身体的感受（呼吸、心跳、触感）或环境的细微变化（光线、声音）。" +
			"语气要极其温柔、舒缓、抒情。不要使用引号。",
		retry:     "用户希望换一个角度或隐喻。",
		userFrame: "用户目前的诗：\n%s\n\n请给出下一句引导：",
	},
}

func textsFor(locale string) localeText {
	if t, ok := texts[locale]; ok {
		return t
	}
	return texts["en"]
}

// InitialGuidance is shown before the first line is written.
func InitialGuidance(locale string) string {
	return textsFor(locale).initial
}

// FallbackGuidance replaces guidance when the model call fails.
func FallbackGuidance(locale string) string {
	return textsFor(locale).fallback
}

func BuildGuidancePrompt(locale string, lines []string, retry bool) Prompt {
	t := textsFor(locale)
	poem := t.notYet
	if len(lines) > 0 {
		poem = strings.Join(lines, "\n")
	}
	system := t.system
	if retry {
		system += t.retry
	}
	return Prompt{
		Kind:        KindGuidance,
		Locale:      locale,
		System:      system,
		User:        fmt.Sprintf(t.userFrame, poem),
		Temperature: guidanceTemperature,
		MaxTokens:   guidanceMaxTokens,
	}
}

// BuildVisualsPrompt asks for an emotional color and two decorative keywords
// in the COLOR:#hex|ELEMENTS:a,b format ParseVisuals reads.
func BuildVisualsPrompt(lines []string) Prompt {
	user := fmt.Sprintf(`Read this poem:
"%s"

Extract two visual elements:
1. Emotional Color (Hex Code): Warm colors for passion/joy, Cool colors for sadness/calm. Default to Purple (#9B4D73).
2. Decorative Elements (Keywords, choose 2): snow, sun, moon, star, flower, leaf, cloud, water, bird. If none fit, use 'abstract'.

Return strictly in this format: COLOR:#HexCode|ELEMENTS:element1,element2`, strings.Join(lines, "\n"))

	return Prompt{
		Kind:        KindVisuals,
		User:        user,
		Temperature: visualsTemperature,
		MaxTokens:   visualsMaxTokens,
	}
}
