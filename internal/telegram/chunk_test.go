package telegram

import (
	"strings"
	"testing"
)

func TestSplitReply_ShortTextIsSingleSegment(t *testing.T) {
	parts := splitReply("короткий ответ", 4000)
	if len(parts) != 1 || parts[0] != "короткий ответ" {
		t.Fatalf("unexpected parts: %+v", parts)
	}
}

func TestSplitReply_ExactPartition(t *testing.T) {
	text := strings.Repeat("a", 9000)
	parts := splitReply(text, 4000)
	if len(parts) != 3 {
		t.Fatalf("want 3 parts, got %d", len(parts))
	}
	if len(parts[0]) != 4000 || len(parts[1]) != 4000 || len(parts[2]) != 1000 {
		t.Fatalf("wrong lengths: %d %d %d", len(parts[0]), len(parts[1]), len(parts[2]))
	}
	if strings.Join(parts, "") != text {
		t.Fatalf("concatenation does not restore original")
	}
}

func TestSplitReply_LosslessWithWhitespaceAndUnicode(t *testing.T) {
	text := strings.Repeat("строка раз\n\n\tстрока два  ", 300)
	parts := splitReply(text, 100)
	if strings.Join(parts, "") != text {
		t.Fatalf("partition lost characters")
	}
	for i, p := range parts {
		if n := len([]rune(p)); n > 100 {
			t.Fatalf("part %d exceeds max: %d runes", i, n)
		}
	}
}

func TestLabelParts(t *testing.T) {
	single := labelParts([]string{"только одна часть"})
	if single[0] != "только одна часть" {
		t.Fatalf("single segment must stay unlabeled: %q", single[0])
	}

	labeled := labelParts([]string{"aaa", "bbb"})
	if labeled[0] != "(part 1/2)\naaa" || labeled[1] != "(part 2/2)\nbbb" {
		t.Fatalf("unexpected labels: %+v", labeled)
	}
}
