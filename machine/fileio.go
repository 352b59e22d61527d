package machine

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadInputFile loads the input buffer from path. The first line is either
// a bracketed literal list ("[72, 105]"), evaluated element-wise, or a
// plain line of text, converted to ordinals one rune at a time (spec.md 6).
// The returned slice is prefixed with its own length, so the first word an
// IN instruction ever observes is how many words follow it.
func ReadInputFile(path string) ([]int32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}

	line := firstLine(string(raw))

	var words []int32
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		words, err = parseLiteralList(trimmed)
		if err != nil {
			return nil, err
		}
	} else {
		for _, r := range line {
			words = append(words, int32(r))
		}
	}

	out := make([]int32, 0, len(words)+1)
	out = append(out, int32(len(words)))
	out = append(out, words...)
	return out, nil
}

func firstLine(s string) string {
	if idx := strings.IndexAny(s, "\r\n"); idx >= 0 {
		return s[:idx]
	}
	return s
}

func parseLiteralList(s string) ([]int32, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil, nil
	}

	parts := strings.Split(inner, ",")
	words := make([]int32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return nil, &TranslationError{Message: "malformed input literal", Token: p}
		}
		words = append(words, int32(n))
	}
	return words, nil
}

// WriteOutputFile serialises words to path per mode: OutputText writes one
// rune per word, OutputNumeric writes each decimal followed by a space
// separator, including the last (spec.md 4.5).
func WriteOutputFile(path string, words []int32, mode OutputMode) error {
	var sb strings.Builder

	switch mode {
	case OutputText:
		for _, w := range words {
			sb.WriteRune(rune(w))
		}
	case OutputNumeric:
		for _, w := range words {
			sb.WriteString(strconv.FormatInt(int64(w), 10))
			sb.WriteByte(' ')
		}
	default:
		return fmt.Errorf("unknown output mode %d", mode)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
