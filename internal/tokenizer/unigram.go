package tokenizer

import (
	"math"
	"strings"
	"unicode/utf8"
)

type textPart struct {
	text    string
	addedID int // -1 for plain text
}

// tokenize converts text to token ids without adding any frame tokens.
// Added tokens (specials, language codes, mask) are matched verbatim
// before segmentation; everything else goes through normalization and
// Unigram segmentation.
func (t *Tokenizer) tokenize(text string) []int {
	var ids []int
	for _, part := range t.splitAdded(text) {
		if part.addedID >= 0 {
			ids = append(ids, part.addedID)
			continue
		}
		if strings.TrimSpace(part.text) == "" {
			continue
		}
		ids = append(ids, t.segment(normalize(part.text))...)
	}
	return ids
}

// splitAdded splits text around added-token occurrences, longest match
// first at each position.
func (t *Tokenizer) splitAdded(text string) []textPart {
	var parts []textPart
	var buf strings.Builder
	for i := 0; i < len(text); {
		match := ""
		for _, at := range t.added {
			if i+len(at) > len(text) {
				continue
			}
			if text[i:i+len(at)] == at {
				match = at
				break
			}
		}
		if match != "" {
			if buf.Len() > 0 {
				parts = append(parts, textPart{text: buf.String(), addedID: -1})
				buf.Reset()
			}
			parts = append(parts, textPart{text: match, addedID: t.addedID[match]})
			i += len(match)
			continue
		}
		buf.WriteByte(text[i])
		i++
	}
	if buf.Len() > 0 {
		parts = append(parts, textPart{text: buf.String(), addedID: -1})
	}
	return parts
}

// normalize collapses whitespace runs and applies the metaspace scheme:
// a dummy prefix plus one metaspace per word boundary, matching how the
// checkpoint's pieces were trained.
func normalize(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return metaspace + strings.Join(fields, metaspace)
}

// segment finds the max-score piece sequence for normalized text with a
// Viterbi pass over the piece vocabulary. Characters no piece covers
// fall back to the unk id; adjacent unk runes collapse into one token.
func (t *Tokenizer) segment(text string) []int {
	n := len(text)
	if n == 0 {
		return nil
	}

	score := make([]float64, n+1)
	prev := make([]int, n+1)
	ids := make([]int, n+1)
	for i := 1; i <= n; i++ {
		score[i] = math.Inf(-1)
		prev[i] = -1
	}

	for i := 0; i < n; i++ {
		if math.IsInf(score[i], -1) {
			continue
		}
		limit := i + t.maxPiece
		if limit > n {
			limit = n
		}
		for j := i + 1; j <= limit; j++ {
			id, ok := t.pieces[text[i:j]]
			if !ok {
				continue
			}
			if s := score[i] + t.scores[id]; s > score[j] {
				score[j] = s
				prev[j] = i
				ids[j] = id
			}
		}
		// Single-rune fallback keeps every position reachable.
		_, size := utf8.DecodeRuneInString(text[i:])
		if j := i + size; prev[j] == -1 {
			score[j] = score[i] + t.unkScore
			prev[j] = i
			ids[j] = t.unkID
		}
	}

	var out []int
	for j := n; j > 0; j = prev[j] {
		out = append(out, ids[j])
	}
	reverse(out)

	// Collapse adjacent unk tokens the way sentencepiece does.
	collapsed := out[:0]
	for _, id := range out {
		if id == t.unkID && len(collapsed) > 0 && collapsed[len(collapsed)-1] == t.unkID {
			continue
		}
		collapsed = append(collapsed, id)
	}
	return collapsed
}

func reverse(ids []int) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
