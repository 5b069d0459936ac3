// Package tokenizer loads the HuggingFace tokenizer.json shipped with
// MBart-50 checkpoints and exposes an immutable Unigram tokenizer.
//
// The tokenizer is fully determined by the file at load time: piece
// vocabulary with log-probability scores, added tokens, and the language
// code table derived from the added tokens. A loaded Tokenizer is
// read-only and safe for concurrent use; the source language is a
// parameter of every encode call, never tokenizer state.
package tokenizer

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Language codes in MBart-50 checkpoints follow fairseq naming: a
// two-letter language, an underscore, a two-letter region (en_XX, zh_CN).
var langCodeRE = regexp.MustCompile(`^[a-z]{2}_[A-Z]{2}$`)

const (
	bosToken  = "<s>"
	padToken  = "<pad>"
	eosToken  = "</s>"
	unkToken  = "<unk>"
	maskToken = "<mask>"

	metaspace = "▁" // ▁, SentencePiece space marker
)

// Tokenizer is an immutable MBart-50 Unigram tokenizer.
type Tokenizer struct {
	pieces   map[string]int
	decoder  []string
	scores   []float64
	maxPiece int     // longest piece in bytes, bounds segmentation lookahead
	unkScore float64 // penalty for characters outside the vocabulary

	added    []string // added-token contents, longest first
	addedID  map[string]int
	specials map[int]struct{}

	langs  []string // language codes ordered by token id
	langID map[string]int

	bosID  int
	padID  int
	eosID  int
	unkID  int
	maskID int
}

type tokenizerJSON struct {
	Model struct {
		Type  string  `json:"type"`
		UnkID *int    `json:"unk_id"`
		Vocab [][]any `json:"vocab"`
	} `json:"model"`
	AddedTokens []struct {
		ID      int    `json:"id"`
		Content string `json:"content"`
		Special bool   `json:"special"`
	} `json:"added_tokens"`
}

// Load reads and parses a tokenizer.json file.
func Load(path string) (*Tokenizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tok, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tok, nil
}

// LoadBytes parses tokenizer.json content.
func LoadBytes(data []byte) (*Tokenizer, error) {
	var tj tokenizerJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return nil, fmt.Errorf("parse tokenizer json: %w", err)
	}
	if !strings.EqualFold(tj.Model.Type, "Unigram") {
		return nil, fmt.Errorf("unsupported tokenizer model: %s", tj.Model.Type)
	}
	if len(tj.Model.Vocab) == 0 {
		return nil, fmt.Errorf("tokenizer vocab is empty")
	}

	maxID := len(tj.Model.Vocab) - 1
	for _, at := range tj.AddedTokens {
		if at.ID > maxID {
			maxID = at.ID
		}
	}

	t := &Tokenizer{
		pieces:   make(map[string]int, len(tj.Model.Vocab)),
		decoder:  make([]string, maxID+1),
		scores:   make([]float64, maxID+1),
		addedID:  make(map[string]int, len(tj.AddedTokens)),
		specials: make(map[int]struct{}, len(tj.AddedTokens)),
		langID:   make(map[string]int),
		bosID:    -1,
		padID:    -1,
		eosID:    -1,
		unkID:    -1,
		maskID:   -1,
	}

	minScore := 0.0
	for id, entry := range tj.Model.Vocab {
		if len(entry) != 2 {
			return nil, fmt.Errorf("vocab entry %d: want [piece, score] pair", id)
		}
		piece, ok := entry[0].(string)
		if !ok {
			return nil, fmt.Errorf("vocab entry %d: piece is not a string", id)
		}
		score, ok := entry[1].(float64)
		if !ok {
			return nil, fmt.Errorf("vocab entry %d: score is not a number", id)
		}
		t.pieces[piece] = id
		t.decoder[id] = piece
		t.scores[id] = score
		if len(piece) > t.maxPiece {
			t.maxPiece = len(piece)
		}
		if score < minScore {
			minScore = score
		}
	}
	t.unkScore = minScore - 10

	if tj.Model.UnkID != nil {
		t.unkID = *tj.Model.UnkID
	}

	// Added tokens override vocab entries at the same id and extend the
	// table past the base vocabulary (language codes, mask).
	sort.SliceStable(tj.AddedTokens, func(i, j int) bool {
		return tj.AddedTokens[i].ID < tj.AddedTokens[j].ID
	})
	for _, at := range tj.AddedTokens {
		if at.ID < 0 {
			return nil, fmt.Errorf("added token %q has negative id", at.Content)
		}
		t.decoder[at.ID] = at.Content
		t.addedID[at.Content] = at.ID
		if at.Special {
			t.specials[at.ID] = struct{}{}
		}
		if langCodeRE.MatchString(at.Content) {
			t.langs = append(t.langs, at.Content)
			t.langID[at.Content] = at.ID
		}
	}
	t.added = collectAdded(t.addedID)

	for name, dst := range map[string]*int{
		bosToken:  &t.bosID,
		padToken:  &t.padID,
		eosToken:  &t.eosID,
		maskToken: &t.maskID,
	} {
		id, ok := t.addedID[name]
		if !ok {
			// Fall back to the base vocab for checkpoints that keep
			// the frame tokens only as pieces.
			id, ok = t.pieces[name]
		}
		if !ok {
			return nil, fmt.Errorf("tokenizer missing %s token", name)
		}
		*dst = id
	}
	if t.unkID < 0 {
		id, ok := t.addedID[unkToken]
		if !ok {
			id, ok = t.pieces[unkToken]
		}
		if !ok {
			return nil, fmt.Errorf("tokenizer missing %s token", unkToken)
		}
		t.unkID = id
	}
	if len(t.langs) == 0 {
		return nil, fmt.Errorf("tokenizer has no language codes in its added tokens")
	}

	return t, nil
}

// Languages returns the supported language codes in token id order.
// The returned slice is a copy.
func (t *Tokenizer) Languages() []string {
	out := make([]string, len(t.langs))
	copy(out, t.langs)
	return out
}

// LangID returns the token id for a language code.
func (t *Tokenizer) LangID(code string) (int, bool) {
	id, ok := t.langID[code]
	return id, ok
}

func (t *Tokenizer) BOSID() int  { return t.bosID }
func (t *Tokenizer) PadID() int  { return t.padID }
func (t *Tokenizer) EOSID() int  { return t.eosID }
func (t *Tokenizer) UnkID() int  { return t.unkID }
func (t *Tokenizer) MaskID() int { return t.maskID }

// VocabSize returns the size of the id space including added tokens.
func (t *Tokenizer) VocabSize() int { return len(t.decoder) }

// TokenString returns the raw piece or added-token content for an id.
func (t *Tokenizer) TokenString(id int) string {
	if id < 0 || id >= len(t.decoder) {
		return ""
	}
	return t.decoder[id]
}

// IsSpecial reports whether id is a special added token. Language codes
// are specials in MBart-50 checkpoints.
func (t *Tokenizer) IsSpecial(id int) bool {
	_, ok := t.specials[id]
	return ok
}

// collectAdded returns added-token contents sorted longest first so that
// splitting always takes the longest match at each position.
func collectAdded(addedID map[string]int) []string {
	out := make([]string, 0, len(addedID))
	for content := range addedID {
		out = append(out, content)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
