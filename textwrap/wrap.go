// Package textwrap breaks text into lines using real font advance widths.
package textwrap

import "strings"

// Measurer reports the advance width of s set at size points.
type Measurer interface {
	Width(s string, size float64) (float64, error)
}

// Wrap splits text on whitespace and greedily packs words into lines no wider
// than maxWidth. A line always takes at least one word, so a word wider than
// maxWidth comes back alone and unsplit. Empty or all-space input yields one
// empty line.
func Wrap(text string, maxWidth float64, m Measurer, size float64) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}, nil
	}

	var (
		lines []string
		cur   = words[0]
	)
	for _, w := range words[1:] {
		next := cur + " " + w
		width, err := m.Width(next, size)
		if err != nil {
			return nil, err
		}
		if width <= maxWidth {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur), nil
}

// WrapLines wraps each entry of lines independently and concatenates the results.
// Blank entries are skipped.
func WrapLines(lines []string, maxWidth float64, m Measurer, size float64) ([]string, error) {
	var out []string
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		wrapped, err := Wrap(l, maxWidth, m, size)
		if err != nil {
			return nil, err
		}
		out = append(out, wrapped...)
	}
	return out, nil
}
