// Package qit is a state-vector quantum circuit simulator. It represents
// an n-qubit system as a dense vector of 2^n complex amplitudes and
// applies gates by direct index manipulation on that vector; no gate
// matrix is ever materialized.
//
// Basis indices follow the little-endian convention: bit i of a basis
// index is the value of qubit i, so |01⟩ on two qubits is index 1 with
// qubit 0 set.
package qit

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// MaxQubits bounds the size of a state vector. 2^30 amplitudes is 16 GiB
// of complex128, the practical ceiling for a dense representation.
const MaxQubits = 30

// Qubits is the full joint state of Size qubits: 2^Size complex
// amplitudes indexed by basis-state bit pattern. It is a pure data
// container; all gate logic lives on Operator implementations.
type Qubits struct {
	Size int
	Amps []complex128
}

// Zeros returns the state |0…0⟩ for size qubits.
func Zeros(size int) (*Qubits, error) {
	return FromNum(size, 0)
}

// FromNum returns the basis state |num⟩ for size qubits.
func FromNum(size, num int) (*Qubits, error) {
	return FromAmp(size, num, 1)
}

// FromAmp returns a state with the single amplitude amp at basis index
// num. The amplitude must have unit magnitude.
func FromAmp(size, num int, amp complex128) (*Qubits, error) {
	if size <= 0 || size > MaxQubits {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if num < 0 || num >= 1<<size {
		return nil, fmt.Errorf("%w: %d for %d qubits", ErrInvalidIndex, num, size)
	}
	if math.Abs(absSquare(amp)-1.0) > 1e-9 {
		return nil, fmt.Errorf("%w: amplitude %v is not unit magnitude", ErrInvalidIndex, amp)
	}
	amps := make([]complex128, 1<<size)
	amps[num] = amp
	return &Qubits{Size: size, Amps: amps}, nil
}

// FromAmps wraps a complete amplitude vector. The slice is owned by the
// returned state from then on.
func FromAmps(size int, amps []complex128) (*Qubits, error) {
	if size <= 0 || size > MaxQubits {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if len(amps) != 1<<size {
		return nil, fmt.Errorf("%w: %d amplitudes for %d qubits", ErrInvalidIndex, len(amps), size)
	}
	return &Qubits{Size: size, Amps: amps}, nil
}

// Clone returns an independent copy of the state.
func (q *Qubits) Clone() *Qubits {
	amps := make([]complex128, len(q.Amps))
	copy(amps, q.Amps)
	return &Qubits{Size: q.Size, Amps: amps}
}

// BasisCount returns the number of basis states, 2^Size.
func (q *Qubits) BasisCount() int {
	return len(q.Amps)
}

// Amplitude returns the complex amplitude at basis index num.
func (q *Qubits) Amplitude(num int) (complex128, error) {
	if num < 0 || num >= len(q.Amps) {
		return 0, fmt.Errorf("%w: %d for %d qubits", ErrInvalidIndex, num, q.Size)
	}
	return q.Amps[num], nil
}

// Prob returns the measurement probability of basis index num.
func (q *Qubits) Prob(num int) (float64, error) {
	if num < 0 || num >= len(q.Amps) {
		return 0, fmt.Errorf("%w: %d for %d qubits", ErrInvalidIndex, num, q.Size)
	}
	return absSquare(q.Amps[num]), nil
}

// Probs returns the probability of every basis state.
func (q *Qubits) Probs() []float64 {
	probs := make([]float64, len(q.Amps))
	for i, a := range q.Amps {
		probs[i] = absSquare(a)
	}
	return probs
}

// PopMostPlausible returns the basis index with the highest probability.
func (q *Qubits) PopMostPlausible() int {
	maxProb := 0.0
	maxIdx := 0
	for i, a := range q.Amps {
		if p := absSquare(a); p > maxProb {
			maxProb = p
			maxIdx = i
		}
	}
	return maxIdx
}

// Measure returns the marginal probability distribution over the given
// qubits. Entry j of the result is the probability of reading the bit
// pattern j off targets, with targets[0] as the least significant bit.
func (q *Qubits) Measure(targets []int) ([]float64, error) {
	for _, t := range targets {
		if t < 0 || t >= q.Size {
			return nil, fmt.Errorf("%w: %d for %d qubits", ErrInvalidQubitIndex, t, q.Size)
		}
	}
	probs := make([]float64, 1<<len(targets))
	for i, a := range q.Amps {
		idx := 0
		for j, t := range targets {
			idx |= (1 & (i >> t)) << j
		}
		probs[idx] += absSquare(a)
	}
	return probs, nil
}

// Sample draws a basis index according to the state's probability
// distribution.
func (q *Qubits) Sample(rng *rand.Rand) int {
	for {
		r := rng.Float64()
		for i, a := range q.Amps {
			r -= absSquare(a)
			if r < 0 {
				return i
			}
		}
		// Rounding pushed the cumulative sum below 1; retry.
	}
}

// String renders one line per basis state with its amplitude, in the
// |bits⟩ : re +im i format.
func (q *Qubits) String() string {
	var b strings.Builder
	for i, a := range q.Amps {
		fmt.Fprintf(&b, "|%0*b⟩ : %+.3f %+.3fi\n", q.Size, i, real(a), imag(a))
	}
	return b.String()
}

func absSquare(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}
