// Package logits turns raw model scores into ranked predictions.
package logits

import "math"

// Prediction pairs a vocabulary id with its probability.
type Prediction struct {
	ID   int
	Prob float32
}

// Softmax converts logits to probabilities. The maximum logit is
// subtracted before exponentiation so large magnitudes do not overflow.
func Softmax(logits []float32) []float32 {
	if len(logits) == 0 {
		return nil
	}
	maxv := logits[0]
	for _, v := range logits[1:] {
		if v > maxv {
			maxv = v
		}
	}

	probs := make([]float32, len(logits))
	var sum float64
	for i, v := range logits {
		e := math.Exp(float64(v - maxv))
		probs[i] = float32(e)
		sum += e
	}
	if sum == 0 {
		return probs
	}
	inv := float32(1.0 / sum)
	for i := range probs {
		probs[i] *= inv
	}
	return probs
}

// TopK returns the k highest-probability predictions ordered from most
// to least probable. k is clamped to the vocabulary size; k <= 0 yields
// nil. This is an O(V*K) insertion pass suitable for small k.
func TopK(probs []float32, k int) []Prediction {
	if k <= 0 || len(probs) == 0 {
		return nil
	}
	if k > len(probs) {
		k = len(probs)
	}

	top := make([]Prediction, 0, k+1)
	for i, p := range probs {
		pos := len(top)
		for pos > 0 && top[pos-1].Prob < p {
			pos--
		}
		if pos >= k {
			continue
		}

		top = append(top, Prediction{})
		copy(top[pos+1:], top[pos:])
		top[pos] = Prediction{ID: i, Prob: p}

		if len(top) > k {
			top = top[:k]
		}
	}
	return top
}
