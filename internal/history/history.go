package history

import (
	"strings"
	"sync"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultLimit is how many turns a user's history keeps before the
// oldest entries are dropped.
const DefaultLimit = 10

// Turn is one recorded unit of conversation.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// Repository persists the full per-user history document.
// Save rewrites the whole document; there are no partial writes.
type Repository interface {
	Load() (map[string][]Turn, error)
	Save(sessions map[string][]Turn) error
}

// Store keeps a bounded, ordered conversation log per user and persists
// it on every mutation. Histories are keyed by user, not by chat.
type Store struct {
	mu       sync.Mutex
	repo     Repository
	max      int
	sessions map[string][]Turn
	now      func() time.Time
}

// NewStore loads existing histories from repo. A nil repo keeps the
// store purely in-memory.
func NewStore(repo Repository, max int) (*Store, error) {
	if max <= 0 {
		max = DefaultLimit
	}
	sessions := make(map[string][]Turn)
	if repo != nil {
		loaded, err := repo.Load()
		if err != nil {
			return nil, err
		}
		if loaded != nil {
			sessions = loaded
		}
	}
	return &Store{repo: repo, max: max, sessions: sessions, now: time.Now}, nil
}

// Append records a turn with the current timestamp, evicting the oldest
// entries once the history exceeds the limit.
func (s *Store) Append(userID, role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := append(s.sessions[userID], Turn{Role: role, Text: text, TS: s.now().Unix()})
	if len(turns) > s.max {
		turns = turns[len(turns)-s.max:]
	}
	s.sessions[userID] = turns
	return s.persistUnlocked()
}

// Prompt renders the stored turns as "User:"/"Assistant:" lines in
// conversational order, ending with a bare "Assistant:" cue so the model
// continues as the assistant. Empty string when there is no history.
func (s *Store) Prompt(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.sessions[userID]
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range turns {
		if t.Role == RoleAssistant {
			b.WriteString("Assistant: ")
		} else {
			b.WriteString("User: ")
		}
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	b.WriteString("Assistant:")
	return b.String()
}

// Turns returns a copy of the user's history.
func (s *Store) Turns(userID string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.sessions[userID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Clear deletes the user's history entirely.
func (s *Store) Clear(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return s.persistUnlocked()
}

func (s *Store) persistUnlocked() error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Save(s.sessions)
}
