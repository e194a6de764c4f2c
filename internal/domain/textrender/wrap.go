package textrender

import "strings"

// Measurer returns the rendered width of s in pixels.
type Measurer func(s string) int

// Wrap greedily packs words into lines no wider than limit. A word that is
// wider than limit on its own still gets a line; words are never split.
func Wrap(text string, limit int, measure Measurer) []string {
	var lines []string
	cur := ""
	for _, w := range strings.Fields(text) {
		if cur == "" {
			cur = w
			continue
		}
		next := cur + " " + w
		if measure(next) <= limit {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
