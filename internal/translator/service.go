// Package translator implements the translation service: batch
// translation, mask filling and the supported language table, on top
// of a tokenizer and a model backend.
package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/signalpost/rosetta/internal/logger"
	"github.com/signalpost/rosetta/internal/logits"
	"github.com/signalpost/rosetta/internal/model"
	"github.com/signalpost/rosetta/internal/tokenizer"
)

// DefaultTopK is the fill-mask candidate count when a request does not
// set one.
const DefaultTopK = 10

const maskPlaceholder = "<mask>"

// Service bundles the model, its tokenizer and the supported language
// table. A Service is immutable after New and safe for concurrent use;
// per-request state never touches it.
type Service struct {
	model model.Model
	tok   *tokenizer.Tokenizer
	langs []string
	log   logger.Logger
}

// New derives the language table from the tokenizer and returns a
// ready service.
func New(m model.Model, tok *tokenizer.Tokenizer, log logger.Logger) *Service {
	return &Service{
		model: m,
		tok:   tok,
		langs: tok.Languages(),
		log:   log,
	}
}

// Translate translates each text from srcLang to tgtLang and returns
// one result per input, in order. Both codes must be in the supported
// language table.
func (s *Service) Translate(ctx context.Context, texts []string, srcLang, tgtLang string) ([]string, error) {
	if _, ok := s.tok.LangID(srcLang); !ok {
		return nil, langError{param: "src_lang", code: srcLang}
	}
	tgtID, ok := s.tok.LangID(tgtLang)
	if !ok {
		return nil, langError{param: "tgt_lang", code: tgtLang}
	}
	if len(texts) == 0 {
		return nil, emptyInputError{}
	}

	batch, err := s.tok.EncodeBatch(texts, srcLang)
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}

	start := time.Now()
	outIDs, err := s.model.Generate(ctx, batch, tgtID)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	decoded, err := s.tok.BatchDecode(outIDs, true)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	out := make([]string, len(decoded))
	for i, text := range decoded {
		out[i] = cleanOutput(text)
	}

	s.log.Debug("translate complete",
		"src_lang", srcLang,
		"tgt_lang", tgtLang,
		"texts", len(texts),
		"duration", time.Since(start).String(),
	)
	return out, nil
}

// FillMask returns the topk most probable fills for the single mask
// token in text, most probable first.
func (s *Service) FillMask(ctx context.Context, text, srcLang string, topk int) ([]string, error) {
	langID, ok := s.tok.LangID(srcLang)
	if !ok {
		return nil, langError{param: "src_lang", code: srcLang}
	}
	if topk < 1 {
		return nil, topkError{value: topk}
	}
	if strings.TrimSpace(text) == "" {
		return nil, emptyInputError{}
	}

	body := s.tok.EncodeRaw(text)
	maskPos := -1
	maskCount := 0
	for i, id := range body {
		if id == s.tok.MaskID() {
			maskCount++
			maskPos = i
		}
	}
	if maskCount != 1 {
		return nil, maskCountError{found: maskCount}
	}

	// Frame the sequence the way MBart-50 denoising expects:
	// </s> text </s> src_lang.
	ids := make([]int, 0, len(body)+3)
	ids = append(ids, s.tok.EOSID())
	ids = append(ids, body...)
	ids = append(ids, s.tok.EOSID(), langID)
	maskPos++ // leading eos shifts the mask right by one

	start := time.Now()
	rows, err := s.model.Forward(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("forward: %w", err)
	}
	if maskPos >= len(rows) {
		return nil, fmt.Errorf("forward returned %d positions, mask at %d", len(rows), maskPos)
	}

	top := logits.TopK(logits.Softmax(rows[maskPos]), topk)
	out := make([]string, 0, len(top))
	for _, p := range top {
		word, err := s.tok.Decode([]int{p.ID}, false)
		if err != nil {
			return nil, fmt.Errorf("decode prediction: %w", err)
		}
		word = strings.TrimSpace(word)
		if word == "" {
			word = s.tok.TokenString(p.ID)
		}
		out = append(out, word)
	}

	s.log.Debug("fill mask complete",
		"src_lang", srcLang,
		"topk", topk,
		"duration", time.Since(start).String(),
	)
	return out, nil
}

// SupportedLanguages returns the language codes in the order the
// tokenizer defines them. The returned slice is a copy.
func (s *Service) SupportedLanguages() []string {
	out := make([]string, len(s.langs))
	copy(out, s.langs)
	return out
}

// Close releases the model backend.
func (s *Service) Close() error {
	return s.model.Close()
}
