package tokenizer

import (
	"fmt"
	"strings"
)

// Decode converts token ids back to text. Pieces are concatenated and
// the metaspace marker becomes a space. With skipSpecial set, special
// added tokens (frame tokens, language codes, mask) are dropped.
func (t *Tokenizer) Decode(ids []int, skipSpecial bool) (string, error) {
	var sb strings.Builder
	for _, id := range ids {
		if id < 0 || id >= len(t.decoder) {
			return "", fmt.Errorf("token id out of range: %d", id)
		}
		if skipSpecial {
			if _, ok := t.specials[id]; ok {
				continue
			}
		}
		sb.WriteString(t.decoder[id])
	}
	text := strings.ReplaceAll(sb.String(), metaspace, " ")
	return strings.TrimSpace(text), nil
}

// BatchDecode decodes each id sequence in turn.
func (t *Tokenizer) BatchDecode(batch [][]int, skipSpecial bool) ([]string, error) {
	out := make([]string, len(batch))
	for i, ids := range batch {
		text, err := t.Decode(ids, skipSpecial)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i, err)
		}
		out[i] = text
	}
	return out, nil
}
