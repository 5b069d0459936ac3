package tokenizer

import "fmt"

// Batch is a padded batch of encoded sequences. InputIDs rows are
// right-padded with the pad id; AttentionMask holds 1 for real tokens
// and 0 for padding.
type Batch struct {
	InputIDs      [][]int
	AttentionMask [][]int
}

// Encode tokenizes source text for translation. The sequence is framed
// as [lang_code, pieces..., eos], the shape MBart-50 generation expects
// on the encoder side. srcLang must be a code from Languages.
func (t *Tokenizer) Encode(text, srcLang string) ([]int, error) {
	langID, ok := t.langID[srcLang]
	if !ok {
		return nil, fmt.Errorf("unknown language code: %q", srcLang)
	}
	body := t.tokenize(text)
	ids := make([]int, 0, len(body)+2)
	ids = append(ids, langID)
	ids = append(ids, body...)
	ids = append(ids, t.eosID)
	return ids, nil
}

// EncodeBatch encodes each text with Encode and right-pads the rows to
// a common length.
func (t *Tokenizer) EncodeBatch(texts []string, srcLang string) (Batch, error) {
	rows := make([][]int, len(texts))
	maxLen := 0
	for i, text := range texts {
		ids, err := t.Encode(text, srcLang)
		if err != nil {
			return Batch{}, err
		}
		rows[i] = ids
		if len(ids) > maxLen {
			maxLen = len(ids)
		}
	}

	b := Batch{
		InputIDs:      make([][]int, len(rows)),
		AttentionMask: make([][]int, len(rows)),
	}
	for i, ids := range rows {
		padded := make([]int, maxLen)
		mask := make([]int, maxLen)
		copy(padded, ids)
		for j := range mask {
			if j < len(ids) {
				mask[j] = 1
			} else {
				padded[j] = t.padID
			}
		}
		b.InputIDs[i] = padded
		b.AttentionMask[i] = mask
	}
	return b, nil
}

// EncodeRaw tokenizes text without adding any frame tokens. Added
// tokens inside the text, including the mask token, still map to their
// ids. Callers compose their own frame around the result.
func (t *Tokenizer) EncodeRaw(text string) []int {
	return t.tokenize(text)
}
