package telegram

import "fmt"

// splitReply partitions text into in-order segments of at most max
// runes. Concatenating the segments reproduces the input exactly; no
// whitespace is reflowed.
func splitReply(text string, max int) []string {
	r := []rune(text)
	if max <= 0 || len(r) <= max {
		return []string{text}
	}
	var parts []string
	for len(r) > max {
		parts = append(parts, string(r[:max]))
		r = r[max:]
	}
	return append(parts, string(r))
}

// labelParts prefixes each segment with its position once the reply
// spans more than one message.
func labelParts(parts []string) []string {
	if len(parts) < 2 {
		return parts
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = fmt.Sprintf("(part %d/%d)\n%s", i+1, len(parts), p)
	}
	return out
}
