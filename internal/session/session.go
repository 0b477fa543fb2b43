package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	imagepkg "github.com/youruser/lumenpoem/internal/image"
)

type Stage string

const (
	StageWriting    Stage = "writing"
	StageReflecting Stage = "reflecting"
)

var (
	ErrNotFound  = errors.New("draft not found")
	ErrEmptyLine = errors.New("line is empty")
	ErrNoLines   = errors.New("poem has no lines")
	ErrLineIndex = errors.New("line index out of range")
)

// Draft is one user's poem in progress.
type Draft struct {
	ID                string    `json:"id"`
	Locale            string    `json:"locale"`
	Stage             Stage     `json:"stage"`
	Lines             []string  `json:"lines"`
	Guidance          string    `json:"guidance"`
	Reflection        string    `json:"reflection"`
	IncludeReflection bool      `json:"include_reflection"`

	// Revision changes whenever Lines change; cached visuals are tied to it.
	Revision  int                        `json:"revision"`
	Visuals   *imagepkg.VisualParameters `json:"-"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

func (d *Draft) clone() Draft {
	c := *d
	c.Lines = append([]string(nil), d.Lines...)
	if d.Visuals != nil {
		v := *d.Visuals
		v.Motifs = append([]imagepkg.Motif(nil), d.Visuals.Motifs...)
		c.Visuals = &v
	}
	return c
}

// Store keeps drafts in memory. Drafts idle for longer than the TTL are
// dropped lazily on access or by Sweep.
type Store struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	ttl    time.Duration
	now    func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{drafts: map[string]*Draft{}, ttl: ttl, now: time.Now}
}

func (s *Store) expired(d *Draft) bool {
	return s.ttl > 0 && s.now().Sub(d.UpdatedAt) > s.ttl
}

// Create starts a writing draft with the given opening guidance.
func (s *Store) Create(locale, guidance string) Draft {
	now := s.now()
	d := &Draft{
		ID:        uuid.NewString(),
		Locale:    locale,
		Stage:     StageWriting,
		Lines:     []string{},
		Guidance:  guidance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()
	return d.clone()
}

func (s *Store) Get(id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.lookup(id)
	if err != nil {
		return Draft{}, err
	}
	return d.clone(), nil
}

func (s *Store) lookup(id string) (*Draft, error) {
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.expired(d) {
		delete(s.drafts, id)
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *Store) update(id string, fn func(d *Draft) error) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.lookup(id)
	if err != nil {
		return Draft{}, err
	}
	if err := fn(d); err != nil {
		return Draft{}, err
	}
	d.UpdatedAt = s.now()
	return d.clone(), nil
}

func (d *Draft) linesChanged() {
	d.Revision++
	d.Visuals = nil
}

// cleanLine trims surrounding whitespace; blank lines are rejected.
func cleanLine(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyLine
	}
	return text, nil
}

// AddLine appends a non-blank line, trimmed.
func (s *Store) AddLine(id, text string) (Draft, error) {
	text, err := cleanLine(text)
	if err != nil {
		return Draft{}, err
	}
	return s.update(id, func(d *Draft) error {
		d.Lines = append(d.Lines, text)
		d.linesChanged()
		return nil
	})
}

// EditLine replaces the line at index under the same rules as AddLine.
func (s *Store) EditLine(id string, index int, text string) (Draft, error) {
	text, err := cleanLine(text)
	if err != nil {
		return Draft{}, err
	}
	return s.update(id, func(d *Draft) error {
		if index < 0 || index >= len(d.Lines) {
			return ErrLineIndex
		}
		if d.Lines[index] == text {
			return nil
		}
		d.Lines[index] = text
		d.linesChanged()
		return nil
	})
}

// Finish moves a draft with at least one line to the reflecting stage.
func (s *Store) Finish(id string) (Draft, error) {
	return s.update(id, func(d *Draft) error {
		if len(d.Lines) == 0 {
			return ErrNoLines
		}
		d.Stage = StageReflecting
		return nil
	})
}

// Back returns a draft to the writing stage.
func (s *Store) Back(id string) (Draft, error) {
	return s.update(id, func(d *Draft) error {
		d.Stage = StageWriting
		return nil
	})
}

func (s *Store) SetReflection(id, text string, include bool) (Draft, error) {
	return s.update(id, func(d *Draft) error {
		d.Reflection = text
		d.IncludeReflection = include
		return nil
	})
}

func (s *Store) SetGuidance(id, text string) (Draft, error) {
	return s.update(id, func(d *Draft) error {
		d.Guidance = text
		return nil
	})
}

// SetVisuals caches analysis results computed for the given revision. Results
// for an older revision are dropped.
func (s *Store) SetVisuals(id string, revision int, v imagepkg.VisualParameters) error {
	_, err := s.update(id, func(d *Draft) error {
		if d.Revision == revision {
			d.Visuals = &v
		}
		return nil
	})
	return err
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.drafts, id)
	return nil
}

// Sweep drops expired drafts and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, d := range s.drafts {
		if s.expired(d) {
			delete(s.drafts, id)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}
