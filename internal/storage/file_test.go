package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "log.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}

	ev1 := Event{Timestamp: time.Unix(1, 0).UTC(), UserID: 1, ChatID: 1, Source: "text", UserMessage: "hi", AssistantResponse: "hello"}
	ev2 := Event{Timestamp: time.Unix(2, 0).UTC(), UserID: 2, ChatID: 7, Source: "voice", UserMessage: "foo", AssistantResponse: "bar"}
	if err := rec.AppendInteraction(ev1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.AppendInteraction(ev2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	events, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2, got %d", len(events))
	}
	if events[0].UserID != 1 || events[1].Source != "voice" {
		t.Fatalf("order or fields mismatch: %+v", events)
	}

	st, err := os.Stat(p)
	if err != nil || st.Size() == 0 {
		t.Fatalf("file not written")
	}
}

func TestDailyReport(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewFileRecorder(filepath.Join(dir, "log.jsonl"))
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	now := time.Now().UTC()
	old := Event{Timestamp: now.Add(-48 * time.Hour), UserID: 1, Source: "text"}
	fresh1 := Event{Timestamp: now.Add(-time.Hour), UserID: 1, Source: "text"}
	fresh2 := Event{Timestamp: now.Add(-time.Minute), UserID: 2, Source: "photo"}
	for _, ev := range []Event{old, fresh1, fresh2} {
		if err := rec.AppendInteraction(ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	report, err := DailyReport(rec, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	want := "2 interactions from 2 users (photo=1, text=1)"
	if report != want {
		t.Fatalf("want %q, got %q", want, report)
	}
}

func TestDailyReport_Empty(t *testing.T) {
	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "log.jsonl"))
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	report, err := DailyReport(rec, time.Now())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report != "no interactions" {
		t.Fatalf("unexpected report: %q", report)
	}
}
