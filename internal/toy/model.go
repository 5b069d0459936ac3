// Package toy provides a deterministic in-process model and a matching
// tokenizer fixture. Tests and local development use it in place of a
// real backend: generation echoes the source tokens in the output
// frame and forward passes rank a configurable id set highest, so
// results are stable without network or weights.
package toy

import (
	"context"
	"sync"

	"github.com/signalpost/rosetta/internal/tokenizer"
)

// Model implements the model backend interface in process.
type Model struct {
	// Favor lists the ids Forward ranks highest, best first. Ids
	// outside the vocabulary are ignored.
	Favor []int

	tok *tokenizer.Tokenizer

	mu            sync.Mutex
	generateCalls int
	forwardCalls  int
	lastForcedBOS int
}

// New returns a toy model bound to tok's vocabulary.
func New(tok *tokenizer.Tokenizer) *Model {
	return &Model{tok: tok, lastForcedBOS: -1}
}

// Generate echoes each row's non-special tokens inside the frame real
// generation produces: [eos, forcedBOS, tokens..., eos]. Decoding the
// result with specials skipped yields the source text unchanged.
func (m *Model) Generate(_ context.Context, batch tokenizer.Batch, forcedBOS int) ([][]int, error) {
	m.mu.Lock()
	m.generateCalls++
	m.lastForcedBOS = forcedBOS
	m.mu.Unlock()

	out := make([][]int, len(batch.InputIDs))
	for i, row := range batch.InputIDs {
		seq := []int{m.tok.EOSID(), forcedBOS}
		for j, id := range row {
			if j < len(batch.AttentionMask[i]) && batch.AttentionMask[i][j] == 0 {
				continue
			}
			if m.tok.IsSpecial(id) {
				continue
			}
			seq = append(seq, id)
		}
		seq = append(seq, m.tok.EOSID())
		out[i] = seq
	}
	return out, nil
}

// Forward returns one logits row per position. Every row scores the
// Favor ids with descending positive values and everything else zero.
func (m *Model) Forward(_ context.Context, ids []int) ([][]float32, error) {
	m.mu.Lock()
	m.forwardCalls++
	m.mu.Unlock()

	rows := make([][]float32, len(ids))
	for i := range ids {
		row := make([]float32, m.tok.VocabSize())
		for rank, id := range m.Favor {
			if id >= 0 && id < len(row) {
				row[id] = float32(2 * (len(m.Favor) - rank))
			}
		}
		rows[i] = row
	}
	return rows, nil
}

func (m *Model) Close() error { return nil }

// GenerateCalls reports how many times Generate ran.
func (m *Model) GenerateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateCalls
}

// ForwardCalls reports how many times Forward ran.
func (m *Model) ForwardCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.forwardCalls
}

// LastForcedBOS returns the forcedBOS of the most recent Generate, or
// -1 before the first call.
func (m *Model) LastForcedBOS() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastForcedBOS
}
