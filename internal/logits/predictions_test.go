package logits

import (
	"math"
	"testing"
)

func TestSoftmax(t *testing.T) {
	t.Parallel()

	t.Run("sums to one", func(t *testing.T) {
		t.Parallel()
		probs := Softmax([]float32{0, 1, 2, 3})
		var sum float64
		for _, p := range probs {
			sum += float64(p)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Fatalf("probabilities sum to %v, want 1", sum)
		}
	})

	t.Run("preserves argmax on large magnitudes", func(t *testing.T) {
		t.Parallel()
		probs := Softmax([]float32{1000, 999, 998})
		if probs[0] <= probs[1] || probs[1] <= probs[2] {
			t.Fatalf("ordering lost: %v", probs)
		}
		for _, p := range probs {
			if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
				t.Fatalf("unstable softmax output: %v", probs)
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		if probs := Softmax(nil); probs != nil {
			t.Fatalf("expected nil for empty input, got %v", probs)
		}
	})
}

func TestTopK(t *testing.T) {
	t.Parallel()

	probs := []float32{0.1, 0.4, 0.05, 0.3, 0.15}

	t.Run("ordered descending", func(t *testing.T) {
		t.Parallel()
		top := TopK(probs, 3)
		if len(top) != 3 {
			t.Fatalf("unexpected prediction count: got %d want 3", len(top))
		}
		wantIDs := []int{1, 3, 4}
		for i, p := range top {
			if p.ID != wantIDs[i] {
				t.Fatalf("unexpected id at %d: got %d want %d", i, p.ID, wantIDs[i])
			}
		}
		for i := 1; i < len(top); i++ {
			if top[i].Prob > top[i-1].Prob {
				t.Fatalf("predictions not in descending order: %v", top)
			}
		}
	})

	t.Run("k clamps to length", func(t *testing.T) {
		t.Parallel()
		top := TopK(probs, 50)
		if len(top) != len(probs) {
			t.Fatalf("unexpected prediction count: got %d want %d", len(top), len(probs))
		}
	})

	t.Run("k of one is argmax", func(t *testing.T) {
		t.Parallel()
		top := TopK(probs, 1)
		if len(top) != 1 || top[0].ID != 1 {
			t.Fatalf("unexpected top prediction: %v", top)
		}
	})

	t.Run("non positive k", func(t *testing.T) {
		t.Parallel()
		if top := TopK(probs, 0); top != nil {
			t.Fatalf("expected nil for k=0, got %v", top)
		}
		if top := TopK(probs, -3); top != nil {
			t.Fatalf("expected nil for negative k, got %v", top)
		}
	})
}
