package ingest

import "unicode"

// SplitText cuts text into windows of at most size runes. Every window after the first starts with
// the last overlap runes of the previous one, so dropping those prefixes rebuilds the input exactly.
// Cut points prefer a paragraph break, then a sentence end, then a space, then a hard cut.
func SplitText(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, ErrInvalidChunkConfig
	}

	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil, nil
	}

	var chunks []string
	start := 0
	for {
		end := start + size
		if end >= n {
			return append(chunks, string(runes[start:])), nil
		}
		cut := findCut(runes, start, end, overlap)
		chunks = append(chunks, string(runes[start:cut]))
		start = cut - overlap
	}
}

// findCut returns an index in (start+overlap, end]. end is always < len(runes).
func findCut(runes []rune, start, end, overlap int) int {
	minCut := start + overlap + 1

	for i := end - 2; i >= start; i-- {
		if runes[i] == '\n' && runes[i+1] == '\n' {
			if i+2 >= minCut {
				return i + 2
			}
			break
		}
	}

	for i := end - 1; i >= start; i-- {
		if isSentenceEnd(runes[i]) && unicode.IsSpace(runes[i+1]) {
			if i+1 >= minCut {
				return i + 1
			}
			break
		}
	}

	for i := end - 1; i >= start; i-- {
		if runes[i] == ' ' {
			if i+1 >= minCut {
				return i + 1
			}
			break
		}
	}

	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
