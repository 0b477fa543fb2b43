package prompts

// Prompt is one offline writing prompt.
type Prompt struct {
	Locale string   `json:"locale"`
	Themes []string `json:"themes"`
	Text   string   `json:"text"`
}

// Builtin is served when no prompt file is available.
var Builtin = []Prompt{
	{Locale: "en", Themes: []string{"breath", "body"}, Text: "Let your breath settle lightly, like a feather, upon your awareness right now..."},
	{Locale: "en", Themes: []string{"sound", "weather"}, Text: "Listen to the rhythm of the rain against the window..."},
	{Locale: "en", Themes: []string{"breath", "stillness"}, Text: "Breathe deeply, and feel the stillness of this moment..."},
	{Locale: "en", Themes: []string{"light"}, Text: "Notice where the light rests in the room, and what it touches first..."},
	{Locale: "en", Themes: []string{"body", "touch"}, Text: "Feel the weight of your hands, warm and quiet, as if holding a small stone..."},
	{Locale: "en", Themes: []string{"heartbeat", "body"}, Text: "Follow your heartbeat like footsteps on a soft path at dusk..."},
	{Locale: "zh", Themes: []string{"breath", "body"}, Text: "让呼吸像一片羽毛，轻轻落在此刻的觉察上……"},
	{Locale: "zh", Themes: []string{"sound", "weather"}, Text: "听一听雨点敲打窗户的节奏……"},
	{Locale: "zh", Themes: []string{"breath", "stillness"}, Text: "深深地呼吸，感受这一刻的宁静……"},
	{Locale: "zh", Themes: []string{"light"}, Text: "留意房间里的光落在哪里，它最先触碰了什么……"},
}
