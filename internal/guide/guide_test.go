package guide

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	imagepkg "github.com/youruser/lumenpoem/internal/image"
	"github.com/youruser/lumenpoem/internal/prompts"
)

type stubLLM struct {
	reply string
	err   error
	got   []Prompt
}

func (s *stubLLM) Complete(_ context.Context, p Prompt) (string, error) {
	s.got = append(s.got, p)
	return s.reply, s.err
}

func TestNew_RequiresClient(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("New(nil) error = nil")
	}
}

func TestCleanGuidance(t *testing.T) {
	tests := map[string]string{
		`  "Listen to the rain..."  `: "Listen to the rain...",
		"“Feel the light”":            "Feel the light",
		"plain":                       "plain",
		` " `:                         "",
	}
	for in, want := range tests {
		if got := CleanGuidance(in); got != want {
			t.Errorf("CleanGuidance(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseVisuals(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want imagepkg.VisualParameters
	}{
		{
			name: "well formed",
			raw:  "COLOR:#123456|ELEMENTS:star,moon",
			want: imagepkg.VisualParameters{AccentColor: imagepkg.RGB{R: 0x12, G: 0x34, B: 0x56}, Motifs: []imagepkg.Motif{"star", "moon"}},
		},
		{
			name: "spaces and case",
			raw:  "  COLOR: #ABCDEF | ELEMENTS: Snow, flower \n",
			want: imagepkg.VisualParameters{AccentColor: imagepkg.RGB{R: 0xab, G: 0xcd, B: 0xef}, Motifs: []imagepkg.Motif{"snow", "flower"}},
		},
		{
			name: "elements only",
			raw:  "|ELEMENTS:moon",
			want: imagepkg.VisualParameters{AccentColor: imagepkg.FallbackColor, Motifs: []imagepkg.Motif{"moon"}},
		},
		{
			name: "unknown elements",
			raw:  "COLOR:#000000|ELEMENTS:sun,bird",
			want: imagepkg.VisualParameters{AccentColor: imagepkg.RGB{}, Motifs: []imagepkg.Motif{"abstract", "abstract"}},
		},
		{
			name: "malformed color",
			raw:  "COLOR:purple|ELEMENTS:star",
			want: imagepkg.VisualParameters{AccentColor: imagepkg.FallbackColor, Motifs: []imagepkg.Motif{"star"}},
		},
		{
			name: "no separator",
			raw:  "COLOR:#123456 ELEMENTS:star",
			want: imagepkg.DefaultVisualParameters(),
		},
		{
			name: "empty",
			raw:  "",
			want: imagepkg.DefaultVisualParameters(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseVisuals(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseVisuals(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestGuide_NextPrompt(t *testing.T) {
	llm := &stubLLM{reply: `"Notice the warmth of the cup in your hands."`}
	g, _ := New(llm, nil)

	got := g.NextPrompt(context.Background(), "en", []string{"morning tea"}, true)
	if got != "Notice the warmth of the cup in your hands." {
		t.Errorf("NextPrompt() = %q", got)
	}
	p := llm.got[0]
	if p.Kind != KindGuidance || !strings.Contains(p.User, "morning tea") {
		t.Errorf("prompt = %+v", p)
	}
	if !strings.HasSuffix(p.System, "different perspective or metaphor.") {
		t.Errorf("retry not requested: %q", p.System)
	}
	if p.Temperature != 0.8 || p.MaxTokens != 100 {
		t.Errorf("sampling = %v/%d, want 0.8/100", p.Temperature, p.MaxTokens)
	}
}

func TestGuide_NextPromptFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		llm    *stubLLM
		locale string
		want   string
	}{
		{name: "error en", llm: &stubLLM{err: errors.New("boom")}, locale: "en", want: FallbackGuidance("en")},
		{name: "error zh", llm: &stubLLM{err: errors.New("boom")}, locale: "zh", want: FallbackGuidance("zh")},
		{name: "empty reply", llm: &stubLLM{reply: `""`}, locale: "en", want: FallbackGuidance("en")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := New(tt.llm, nil)
			if got := g.NextPrompt(context.Background(), tt.locale, nil, false); got != tt.want {
				t.Errorf("NextPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGuide_NotStartedYet(t *testing.T) {
	llm := &stubLLM{reply: "x"}
	g, _ := New(llm, nil)
	g.NextPrompt(context.Background(), "en", nil, false)

	if !strings.Contains(llm.got[0].User, "(User has not started yet)") {
		t.Errorf("user prompt = %q", llm.got[0].User)
	}
	if strings.Contains(llm.got[0].System, "different perspective") {
		t.Error("retry requested without retry")
	}
}

func TestGuide_AnalyzeVisuals(t *testing.T) {
	g, _ := New(&stubLLM{reply: "COLOR:#336699|ELEMENTS:snow,moon"}, nil)
	got := g.AnalyzeVisuals(context.Background(), []string{"frost"})
	want := imagepkg.NewVisualParameters("#336699", []string{"snow", "moon"})
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AnalyzeVisuals() = %+v, want %+v", got, want)
	}

	g, _ = New(&stubLLM{err: context.DeadlineExceeded}, nil)
	if got := g.AnalyzeVisuals(context.Background(), nil); !reflect.DeepEqual(got, imagepkg.DefaultVisualParameters()) {
		t.Errorf("AnalyzeVisuals() on error = %+v, want defaults", got)
	}
}

func TestMockLLM(t *testing.T) {
	m := NewMockLLM(nil)
	ctx := context.Background()

	got, err := m.Complete(ctx, BuildVisualsPrompt([]string{"a"}))
	if err != nil || got != MockVisuals {
		t.Errorf("visuals = %q, %v", got, err)
	}

	zh := prompts.Filter(prompts.Builtin, prompts.FilterOptions{Locales: []string{"zh"}})
	text, err := m.Complete(ctx, BuildGuidancePrompt("zh", nil, false))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, p := range zh {
		if p.Text == text {
			found = true
		}
	}
	if !found {
		t.Errorf("zh guidance %q not from the zh deck", text)
	}

	next, _ := m.Complete(ctx, BuildGuidancePrompt("zh", nil, true))
	if next == text {
		t.Errorf("mock repeated %q", text)
	}
}

func TestOpenAILLM_Complete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":0,"model":"deepseek-v3",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"COLOR:#123456|ELEMENTS:star,moon"}}]}`))
	}))
	defer srv.Close()

	llm, err := NewOpenAILLM(&LLMSettings{Provider: "openai", Model: "deepseek-v3", APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAILLM() error = %v", err)
	}
	got, err := llm.Complete(context.Background(), BuildVisualsPrompt([]string{"Light falls softly"}))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "COLOR:#123456|ELEMENTS:star,moon" {
		t.Errorf("Complete() = %q", got)
	}
	if body["model"] != "deepseek-v3" || body["temperature"] != 0.5 || body["max_tokens"] != float64(50) {
		t.Errorf("request body = %v", body)
	}
	msgs, _ := body["messages"].([]any)
	if len(msgs) != 1 {
		t.Errorf("messages = %v, want only the user message", msgs)
	}
}

func TestNewOpenAILLM_Validation(t *testing.T) {
	tests := map[string]*LLMSettings{
		"nil":              nil,
		"no key":           {Model: "m"},
		"no model":         {APIKey: "k"},
		"deepseek no base": {Provider: "deepseek", Model: "m", APIKey: "k"},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewOpenAILLM(cfg); err == nil {
				t.Error("NewOpenAILLM() error = nil")
			}
		})
	}
}
