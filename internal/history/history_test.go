package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStore_AppendAndPrompt(t *testing.T) {
	s, err := NewStore(nil, 10)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	s.now = func() time.Time { return time.Unix(100, 0) }

	if got := s.Prompt("1"); got != "" {
		t.Fatalf("empty history must render empty, got %q", got)
	}

	_ = s.Append("1", RoleUser, "привет")
	_ = s.Append("1", RoleAssistant, "здравствуй")
	_ = s.Append("1", RoleUser, "как дела?")

	want := "User: привет\nAssistant: здравствуй\nUser: как дела?\nAssistant:"
	if got := s.Prompt("1"); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	turns := s.Turns("1")
	if len(turns) != 3 || turns[0].TS != 100 {
		t.Fatalf("unexpected turns: %+v", turns)
	}
}

func TestStore_EvictsOldestBeyondLimit(t *testing.T) {
	s, _ := NewStore(nil, 10)
	for i := 1; i <= 11; i++ {
		_ = s.Append("u", RoleUser, fmt.Sprintf("u%d", i))
	}
	turns := s.Turns("u")
	if len(turns) != 10 {
		t.Fatalf("want 10 turns, got %d", len(turns))
	}
	if turns[0].Text != "u2" || turns[9].Text != "u11" {
		t.Fatalf("wrong eviction order: first=%q last=%q", turns[0].Text, turns[9].Text)
	}
}

// 11 user messages each answered once: 22 turns total, history keeps the
// last 10, so the 2nd user message (turn #3) is gone and the final
// assistant reply (turn #22) is present.
func TestStore_ConversationScenario(t *testing.T) {
	s, _ := NewStore(nil, 10)
	for i := 1; i <= 11; i++ {
		_ = s.Append("u", RoleUser, fmt.Sprintf("вопрос %d", i))
		_ = s.Append("u", RoleAssistant, fmt.Sprintf("ответ %d", i))
	}
	turns := s.Turns("u")
	if len(turns) != 10 {
		t.Fatalf("want 10 turns, got %d", len(turns))
	}
	rendered := s.Prompt("u")
	if strings.Contains(rendered, "вопрос 2\n") {
		t.Fatalf("evicted turn still rendered: %q", rendered)
	}
	if turns[9].Text != "ответ 11" || turns[9].Role != RoleAssistant {
		t.Fatalf("last turn wrong: %+v", turns[9])
	}
	if turns[0].Text != "вопрос 7" {
		t.Fatalf("oldest surviving turn wrong: %+v", turns[0])
	}
}

func TestStore_ClearIsPerUser(t *testing.T) {
	s, _ := NewStore(nil, 10)
	_ = s.Append("a", RoleUser, "x")
	_ = s.Append("b", RoleUser, "y")
	if err := s.Clear("a"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(s.Turns("a")) != 0 {
		t.Fatalf("clear did not wipe user a")
	}
	if len(s.Turns("b")) != 1 {
		t.Fatalf("clear must not affect other users")
	}
}

func TestStore_PersistsThroughRepository(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "memory.json")
	repo, err := NewFileRepository(p)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	s, err := NewStore(repo, 10)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	_ = s.Append("5", RoleUser, "запомни это")
	_ = s.Append("5", RoleAssistant, "запомнил")

	repo2, err := NewFileRepository(p)
	if err != nil {
		t.Fatalf("reopen repo: %v", err)
	}
	s2, err := NewStore(repo2, 10)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	turns := s2.Turns("5")
	if len(turns) != 2 || turns[1].Text != "запомнил" {
		t.Fatalf("history lost on reload: %+v", turns)
	}
}

func TestCorruptFileFailsStoreLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "memory.json")
	if err := os.WriteFile(p, []byte("[broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	repo, err := NewFileRepository(p)
	if err != nil {
		t.Fatalf("constructor must not parse: %v", err)
	}
	if _, err := NewStore(repo, 10); err == nil {
		t.Fatalf("expected error for corrupt store")
	}
}
