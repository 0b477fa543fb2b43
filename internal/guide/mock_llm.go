package guide

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/youruser/lumenpoem/internal/prompts"
)

// MockVisuals is the fixed analysis answer in offline mode.
const MockVisuals = "COLOR:#9B4D73|ELEMENTS:star,abstract"

// MockLLM answers without calling a model: guidance comes from a prompt deck,
// analysis is fixed.
type MockLLM struct {
	Deck []prompts.Prompt

	mu   sync.Mutex
	rnd  *rand.Rand
	last string
}

func NewMockLLM(deck []prompts.Prompt) *MockLLM {
	if len(deck) == 0 {
		deck = prompts.Builtin
	}
	return &MockLLM{Deck: deck, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if prompt.Kind == KindVisuals {
		return MockVisuals, nil
	}
	deck := prompts.Filter(m.Deck, prompts.FilterOptions{Locales: []string{prompt.Locale}})
	if len(deck) == 0 {
		deck = m.Deck
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = prompts.Pick(deck, m.last, m.rnd)
	return m.last, nil
}
