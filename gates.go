package qit

import (
	"fmt"
	"math"
	"strings"
)

var sqrt2Inv = complex(1.0/math.Sqrt2, 0)

// Operator is a unit of computation over a state vector: elementary
// gates, controlled gates and composite circuits all implement it.
//
// Apply transforms the amplitude vector in place and returns the same
// state; callers must not treat the input as an independent value
// afterwards. Operators are immutable once constructed and may be
// applied any number of times, including as shared children of several
// composites.
type Operator interface {
	// Name returns a human-readable identifier used for display only.
	Name() string
	// Apply validates the operator against the state's qubit count and
	// transforms the state.
	Apply(q *Qubits) (*Qubits, error)
	// Reversed returns the inverse operator.
	Reversed() Operator

	// check validates qubit indices against the state size and the
	// control mask claimed by enclosing controlled gates.
	check(size, mask int) error
	// apply transforms the amplitudes restricted to basis indices with
	// all mask bits set. Indices are assumed valid.
	apply(q *Qubits, mask int)
}

func applyOp(op Operator, q *Qubits) (*Qubits, error) {
	if err := op.check(q.Size, 0); err != nil {
		return nil, err
	}
	op.apply(q, 0)
	return q, nil
}

// checkBits verifies that every given qubit index is inside [0, size)
// and does not collide with the accumulated control mask or another of
// the given indices.
func checkBits(size, mask int, bits ...int) error {
	for _, b := range bits {
		if b < 0 || b >= size {
			return fmt.Errorf("%w: %d for %d qubits", ErrInvalidQubitIndex, b, size)
		}
		if mask&(1<<b) != 0 {
			return fmt.Errorf("%w: qubit %d already in use as a control", ErrInvalidQubitIndex, b)
		}
		mask |= 1 << b
	}
	return nil
}

// ───────────────────────── elementary gates ─────────────────────────

// X is the bit-flip (NOT) gate. Applying it swaps every amplitude pair
// that differs only in the target bit: a pure index permutation.
type X struct {
	target int
}

// NewX returns an X gate on the given qubit.
func NewX(target int) X { return X{target: target} }

func (g X) Name() string                    { return fmt.Sprintf("X(%d)", g.target) }
func (g X) Apply(q *Qubits) (*Qubits, error) { return applyOp(g, q) }
func (g X) Reversed() Operator              { return g }

func (g X) check(size, mask int) error {
	return checkBits(size, mask, g.target)
}

func (g X) apply(q *Qubits, mask int) {
	step := 1 << g.target
	m := mask | step
	for idx := m; idx < len(q.Amps); idx = (idx + 1) | m {
		q.Amps[idx-step], q.Amps[idx] = q.Amps[idx], q.Amps[idx-step]
	}
}

// Y is the Pauli-Y gate.
type Y struct {
	target int
}

// NewY returns a Y gate on the given qubit.
func NewY(target int) Y { return Y{target: target} }

func (g Y) Name() string                    { return fmt.Sprintf("Y(%d)", g.target) }
func (g Y) Apply(q *Qubits) (*Qubits, error) { return applyOp(g, q) }
func (g Y) Reversed() Operator              { return g }

func (g Y) check(size, mask int) error {
	return checkBits(size, mask, g.target)
}

func (g Y) apply(q *Qubits, mask int) {
	step := 1 << g.target
	m := mask | step
	for idx := m; idx < len(q.Amps); idx = (idx + 1) | m {
		tmp := q.Amps[idx-step]
		q.Amps[idx-step] = 1i * q.Amps[idx]
		q.Amps[idx] = -1i * tmp
	}
}

// Z is the phase-flip gate: it negates every amplitude whose target bit
// is set. No pairing is needed.
type Z struct {
	target int
}

// NewZ returns a Z gate on the given qubit.
func NewZ(target int) Z { return Z{target: target} }

func (g Z) Name() string                    { return fmt.Sprintf("Z(%d)", g.target) }
func (g Z) Apply(q *Qubits) (*Qubits, error) { return applyOp(g, q) }
func (g Z) Reversed() Operator              { return g }

func (g Z) check(size, mask int) error {
	return checkBits(size, mask, g.target)
}

func (g Z) apply(q *Qubits, mask int) {
	m := mask | 1<<g.target
	for idx := m; idx < len(q.Amps); idx = (idx + 1) | m {
		q.Amps[idx] *= -1
	}
}

// H is the Hadamard gate, the only elementary gate doing real arithmetic
// on amplitude pairs rather than permutation or phase flips.
type H struct {
	target int
}

// NewH returns a Hadamard gate on the given qubit.
func NewH(target int) H { return H{target: target} }

func (g H) Name() string                    { return fmt.Sprintf("H(%d)", g.target) }
func (g H) Apply(q *Qubits) (*Qubits, error) { return applyOp(g, q) }
func (g H) Reversed() Operator              { return g }

func (g H) check(size, mask int) error {
	return checkBits(size, mask, g.target)
}

func (g H) apply(q *Qubits, mask int) {
	step := 1 << g.target
	m := mask | step
	for idx := m; idx < len(q.Amps); idx = (idx + 1) | m {
		tmp := q.Amps[idx-step]
		q.Amps[idx-step] = (q.Amps[idx] + tmp) * sqrt2Inv
		q.Amps[idx] = (tmp - q.Amps[idx]) * sqrt2Inv
	}
}

// R rotates around the z-axis: amplitudes with the target bit set are
// multiplied by e^(i·angle).
type R struct {
	target int
	angle  float64
	phase  complex128
}

// NewR returns a z-rotation by angle (radians) on the given qubit.
func NewR(target int, angle float64) R {
	return R{
		target: target,
		angle:  angle,
		phase:  complex(math.Cos(angle), math.Sin(angle)),
	}
}

func (g R) Name() string                    { return fmt.Sprintf("R_%g(%d)", g.angle, g.target) }
func (g R) Apply(q *Qubits) (*Qubits, error) { return applyOp(g, q) }
func (g R) Reversed() Operator              { return NewR(g.target, -g.angle) }

func (g R) check(size, mask int) error {
	return checkBits(size, mask, g.target)
}

func (g R) apply(q *Qubits, mask int) {
	m := mask | 1<<g.target
	for idx := m; idx < len(q.Amps); idx = (idx + 1) | m {
		q.Amps[idx] *= g.phase
	}
}

// ───────────────────────── controlled gates ─────────────────────────

// CX is the controlled-NOT gate: the target bit flips only on basis
// states where the control bit is set, which the pair walk realizes by
// folding the control bit into the iteration mask.
type CX struct {
	control int
	target  int
}

// NewCX returns a CX gate with the given control and target qubits.
func NewCX(control, target int) CX {
	return CX{control: control, target: target}
}

func (g CX) Name() string                    { return fmt.Sprintf("CX(%d->%d)", g.control, g.target) }
func (g CX) Apply(q *Qubits) (*Qubits, error) { return applyOp(g, q) }
func (g CX) Reversed() Operator              { return g }

func (g CX) check(size, mask int) error {
	return checkBits(size, mask, g.control, g.target)
}

func (g CX) apply(q *Qubits, mask int) {
	step := 1 << g.target
	m := mask | 1<<g.control | step
	for idx := m; idx < len(q.Amps); idx = (idx + 1) | m {
		q.Amps[idx-step], q.Amps[idx] = q.Amps[idx], q.Amps[idx-step]
	}
}

// CCX is the Toffoli gate.
type CCX struct {
	control1 int
	control2 int
	target   int
}

// NewCCX returns a CCX gate with two control qubits and one target.
func NewCCX(control1, control2, target int) CCX {
	return CCX{control1: control1, control2: control2, target: target}
}

func (g CCX) Name() string {
	return fmt.Sprintf("CCX([%d,%d]->%d)", g.control1, g.control2, g.target)
}
func (g CCX) Apply(q *Qubits) (*Qubits, error) { return applyOp(g, q) }
func (g CCX) Reversed() Operator               { return g }

func (g CCX) check(size, mask int) error {
	return checkBits(size, mask, g.control1, g.control2, g.target)
}

func (g CCX) apply(q *Qubits, mask int) {
	step := 1 << g.target
	m := mask | 1<<g.control1 | 1<<g.control2 | step
	for idx := m; idx < len(q.Amps); idx = (idx + 1) | m {
		q.Amps[idx-step], q.Amps[idx] = q.Amps[idx], q.Amps[idx-step]
	}
}

// CNX is an X gate with an arbitrary number of control qubits.
type CNX struct {
	controls []int
	target   int
}

// NewCNX returns an X gate on target controlled by every qubit in
// controls. The control slice is copied.
func NewCNX(controls []int, target int) CNX {
	return CNX{controls: append([]int(nil), controls...), target: target}
}

func (g CNX) Name() string {
	ctl := make([]string, len(g.controls))
	for i, c := range g.controls {
		ctl[i] = fmt.Sprintf("%d", c)
	}
	return fmt.Sprintf("CNX[%s]->%d", strings.Join(ctl, ","), g.target)
}
func (g CNX) Apply(q *Qubits) (*Qubits, error) { return applyOp(g, q) }
func (g CNX) Reversed() Operator               { return g }

func (g CNX) check(size, mask int) error {
	bits := append(append([]int(nil), g.controls...), g.target)
	return checkBits(size, mask, bits...)
}

func (g CNX) controlMask() int {
	m := 0
	for _, c := range g.controls {
		m |= 1 << c
	}
	return m
}

func (g CNX) apply(q *Qubits, mask int) {
	step := 1 << g.target
	m := mask | g.controlMask() | step
	for idx := m; idx < len(q.Amps); idx = (idx + 1) | m {
		q.Amps[idx-step], q.Amps[idx] = q.Amps[idx], q.Amps[idx-step]
	}
}

// ───────────────────────── composite gates ─────────────────────────

// U is an ordered sequence of child operators applied as one gate. The
// order is part of the gate's identity and is preserved exactly on
// apply. Composites nest arbitrarily and may share children.
type U struct {
	label string
	gates []Operator
}

// NewU returns a composite gate with the given label and children.
func NewU(label string, gates ...Operator) *U {
	return &U{label: label, gates: gates}
}

// Append adds children to the end of the sequence and returns the
// composite for chaining. It is intended for the construction phase;
// composites must not be modified once applied or embedded elsewhere.
func (u *U) Append(gates ...Operator) *U {
	u.gates = append(u.gates, gates...)
	return u
}

// Label returns the composite's free-form name.
func (u *U) Label() string { return u.label }

// Rename replaces the composite's label and returns it for chaining.
func (u *U) Rename(label string) *U {
	u.label = label
	return u
}

// Len returns the number of direct children.
func (u *U) Len() int { return len(u.gates) }

// Flatten returns the leaf operators of the composition tree in
// application order. Controlled composites count as leaves.
func (u *U) Flatten() []Operator {
	var out []Operator
	for _, g := range u.gates {
		if child, ok := g.(*U); ok {
			out = append(out, child.Flatten()...)
		} else {
			out = append(out, g)
		}
	}
	return out
}

func (u *U) Name() string { return fmt.Sprintf("U[%s]", u.label) }

func (u *U) Apply(q *Qubits) (*Qubits, error) { return applyOp(u, q) }

// Reversed returns the inverse circuit: children reversed in order, each
// child inverted.
func (u *U) Reversed() Operator {
	rev := make([]Operator, len(u.gates))
	for i, g := range u.gates {
		rev[len(u.gates)-1-i] = g.Reversed()
	}
	return &U{label: u.label, gates: rev}
}

func (u *U) check(size, mask int) error {
	for _, g := range u.gates {
		if err := g.check(size, mask); err != nil {
			return err
		}
	}
	return nil
}

func (u *U) apply(q *Qubits, mask int) {
	for _, g := range u.gates {
		g.apply(q, mask)
	}
}

// CU applies a sequence of child operators only on basis states where
// the control bit is set. The control bit is folded into the iteration
// mask of every leaf, so none of the children may touch it.
type CU struct {
	control int
	label   string
	gates   []Operator
}

// NewCU returns a controlled composite with the given control qubit,
// label and children.
func NewCU(control int, label string, gates ...Operator) *CU {
	return &CU{control: control, label: label, gates: gates}
}

// CUFromU wraps an existing composite under a control qubit, sharing its
// children.
func CUFromU(control int, u *U) *CU {
	return &CU{control: control, label: u.label, gates: u.gates}
}

// Label returns the composite's free-form name.
func (cu *CU) Label() string { return cu.label }

func (cu *CU) Name() string { return fmt.Sprintf("CU(%d->%s)", cu.control, cu.label) }

func (cu *CU) Apply(q *Qubits) (*Qubits, error) { return applyOp(cu, q) }

func (cu *CU) Reversed() Operator {
	rev := make([]Operator, len(cu.gates))
	for i, g := range cu.gates {
		rev[len(cu.gates)-1-i] = g.Reversed()
	}
	return &CU{control: cu.control, label: cu.label, gates: rev}
}

func (cu *CU) check(size, mask int) error {
	if err := checkBits(size, mask, cu.control); err != nil {
		return err
	}
	mask |= 1 << cu.control
	for _, g := range cu.gates {
		if err := g.check(size, mask); err != nil {
			return err
		}
	}
	return nil
}

func (cu *CU) apply(q *Qubits, mask int) {
	mask |= 1 << cu.control
	for _, g := range cu.gates {
		g.apply(q, mask)
	}
}
