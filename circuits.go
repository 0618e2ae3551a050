package qit

import (
	"fmt"
	"math"
)

// Circuit generators. Each function emits a composite gate built only
// from elementary and controlled gates; registers are ordered lists of
// qubit indices with index 0 as the least significant bit.

// checkUnique verifies that no qubit index appears twice across the
// given registers.
func checkUnique(regs ...[]int) error {
	seen := map[int]bool{}
	for _, reg := range regs {
		for _, idx := range reg {
			if seen[idx] {
				return fmt.Errorf("%w: qubit %d used twice", ErrInvalidRegister, idx)
			}
			seen[idx] = true
		}
	}
	return nil
}

// HalfAdderBit emits |a⟩|b⟩|0⟩|0⟩ → |a⟩|b⟩|a⊕b⟩|a·b⟩.
func HalfAdderBit(aIn, bIn, sOut, cOut int) (*U, error) {
	if err := checkUnique([]int{aIn, bIn, sOut, cOut}); err != nil {
		return nil, err
	}
	return NewU("half_adder",
		NewCX(aIn, sOut),
		NewCX(bIn, sOut),
		NewCCX(aIn, bIn, cOut),
	), nil
}

// FullAdderBit emits |a⟩|b⟩|c⟩|0⟩ → |a⟩|a+b+c⟩|c⟩|carry⟩.
func FullAdderBit(aIn, bIn, cIn, cOut int) (*U, error) {
	if err := checkUnique([]int{aIn, bIn, cIn, cOut}); err != nil {
		return nil, err
	}
	return NewU("full_adder_bit",
		NewCCX(aIn, bIn, cOut),
		NewCX(aIn, bIn),
		NewCCX(bIn, cIn, cOut),
		NewCX(cIn, bIn),
	), nil
}

// FullAdder emits a ripple-carry adder |a⟩|b⟩|0⟩ → |a⟩|a+b⟩|0⟩. The
// carry register is borrowed scratch space and is uncomputed back to
// zero.
func FullAdder(aIn, bIn, carry []int) (*U, error) {
	if len(aIn) == 0 || len(aIn) != len(bIn) || len(carry) != len(aIn) {
		return nil, fmt.Errorf("%w: adder registers must be equal-width and non-empty", ErrInvalidRegister)
	}
	if err := checkUnique(aIn, bIn, carry); err != nil {
		return nil, err
	}

	var gates []Operator
	n := len(aIn)
	cIn := carry[0]
	gates = append(gates, NewCCX(aIn[0], bIn[0], cIn))
	for i := 1; i < n; i++ {
		a, b, cOut := aIn[i], bIn[i], carry[i]
		if i == n-1 {
			gates = append(gates, NewCX(a, b), NewCX(cIn, b))
		} else {
			gates = append(gates,
				NewCCX(a, b, cOut),
				NewCX(a, b),
				NewCCX(cIn, b, cOut),
			)
			cIn = cOut
		}
	}
	// Walk back down the carry chain, undoing the scratch bits.
	for i := n - 2; i >= 1; i-- {
		a, b, cOut := aIn[i], bIn[i], carry[i]
		cIn = carry[i-1]
		gates = append(gates,
			NewCCX(cIn, b, cOut),
			NewCX(a, b),
			NewCCX(a, b, cOut),
			NewCX(a, b),
			NewCX(cIn, b),
		)
	}
	gates = append(gates, NewCCX(aIn[0], bIn[0], carry[0]), NewCX(aIn[0], bIn[0]))

	return NewU("full_adder", gates...), nil
}

// Subtract is the reversed ripple adder: |a⟩|b⟩|0⟩ → |a⟩|b-a⟩|0⟩.
func Subtract(aIn, bIn, carry []int) (*U, error) {
	u, err := FullAdder(aIn, bIn, carry)
	if err != nil {
		return nil, err
	}
	return u.Reversed().(*U).Rename("subtract"), nil
}

// addConst2PowerGates emits the shared carry ladder for adding 2^m to
// the register b: a descending run of multiply-controlled NOTs followed
// by the X on bit m.
func addConst2PowerGates(b []int, m int) []Operator {
	var gates []Operator
	for i := m + 1; i < len(b); i++ {
		j := len(b) - i + m
		controls := append([]int(nil), b[m:j]...)
		switch len(controls) {
		case 1:
			gates = append(gates, NewCX(controls[0], b[j]))
		case 2:
			gates = append(gates, NewCCX(controls[0], controls[1], b[j]))
		default:
			gates = append(gates, NewCNX(controls, b[j]))
		}
	}
	return append(gates, NewX(b[m]))
}

// AddConst2Power emits |0⟩|b⟩ → |overflow⟩|b + 2^m⟩, with the top bit
// of b acting as the overflow bit.
func AddConst2Power(b []int, m int) (*U, error) {
	if len(b) == 0 || m < 0 || m >= len(b)-1 {
		return nil, fmt.Errorf("%w: exponent %d for %d-bit register", ErrInvalidRegister, m, len(b))
	}
	if err := checkUnique(b); err != nil {
		return nil, err
	}
	return NewU("add_const_2^n", addConst2PowerGates(b, m)...), nil
}

// OverflowAddConst2Power emits |b⟩|0⟩ → |b + 2^m⟩|overflow⟩ with a
// dedicated overflow qubit.
func OverflowAddConst2Power(b []int, overflow, m int) (*U, error) {
	if len(b) == 0 || m < 0 || m >= len(b) {
		return nil, fmt.Errorf("%w: exponent %d for %d-bit register", ErrInvalidRegister, m, len(b))
	}
	if err := checkUnique(b, []int{overflow}); err != nil {
		return nil, err
	}
	ext := append(append([]int(nil), b...), overflow)
	return NewU("o_qadd_const_2^n", addConst2PowerGates(ext, m)...), nil
}

// WrappingAddConst2Power emits |b⟩ → |b + 2^m mod 2^k⟩.
func WrappingAddConst2Power(b []int, m int) (*U, error) {
	if len(b) == 0 || m < 0 || m >= len(b) {
		return nil, fmt.Errorf("%w: exponent %d for %d-bit register", ErrInvalidRegister, m, len(b))
	}
	if err := checkUnique(b); err != nil {
		return nil, err
	}
	return NewU("w_qadd_const_2^n", addConst2PowerGates(b, m)...), nil
}

// AddConst emits |0⟩|b⟩ → |overflow⟩|b + c⟩, decomposing c into its
// binary expansion and chaining one power-of-two adder per set bit. The
// top bit of b receives the overflow.
func AddConst(b []int, c int) (*U, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("%w: register too narrow", ErrInvalidRegister)
	}
	if c < 0 || c>>(len(b)-1) != 0 {
		return nil, fmt.Errorf("%w: constant %d for %d-bit register", ErrInvalidRegister, c, len(b)-1)
	}
	if err := checkUnique(b); err != nil {
		return nil, err
	}
	u := NewU("add_const")
	for i := 0; i < len(b)-1; i++ {
		if (c>>i)&1 == 1 {
			u.Append(addConst2PowerGates(b, i)...)
		}
	}
	return u, nil
}

// OverflowAddConst emits |b⟩|0⟩ → |b + c⟩|overflow⟩.
func OverflowAddConst(b []int, overflow, c int) (*U, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty register", ErrInvalidRegister)
	}
	if c < 0 || c>>len(b) != 0 {
		return nil, fmt.Errorf("%w: constant %d for %d-bit register", ErrInvalidRegister, c, len(b))
	}
	if err := checkUnique(b, []int{overflow}); err != nil {
		return nil, err
	}
	ext := append(append([]int(nil), b...), overflow)
	u := NewU("o_qadd_const")
	for i := 0; i < len(b); i++ {
		if (c>>i)&1 == 1 {
			u.Append(addConst2PowerGates(ext, i)...)
		}
	}
	return u, nil
}

// WrappingAddConst emits |b⟩ → |b + c mod 2^k⟩ for a k-bit register.
func WrappingAddConst(b []int, c int) (*U, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty register", ErrInvalidRegister)
	}
	if c < 0 || c>>len(b) != 0 {
		return nil, fmt.Errorf("%w: constant %d for %d-bit register", ErrInvalidRegister, c, len(b))
	}
	if err := checkUnique(b); err != nil {
		return nil, err
	}
	u := NewU("w_qadd_const")
	for i := 0; i < len(b); i++ {
		if (c>>i)&1 == 1 {
			u.Append(addConst2PowerGates(b, i)...)
		}
	}
	return u, nil
}

// SubConst is the reversed constant adder: |0⟩|b⟩ → |sign⟩|b - c⟩.
func SubConst(b []int, c int) (*U, error) {
	u, err := AddConst(b, c)
	if err != nil {
		return nil, err
	}
	return u.Reversed().(*U).Rename("sub_const"), nil
}

// OverflowSubConst emits |b⟩|0⟩ → |b - c⟩|borrow⟩.
func OverflowSubConst(b []int, overflow, c int) (*U, error) {
	u, err := OverflowAddConst(b, overflow, c)
	if err != nil {
		return nil, err
	}
	return u.Reversed().(*U).Rename("o_qsub_const"), nil
}

// WrappingSubConst emits |b⟩ → |b - c mod 2^k⟩ for a k-bit register.
func WrappingSubConst(b []int, c int) (*U, error) {
	u, err := WrappingAddConst(b, c)
	if err != nil {
		return nil, err
	}
	return u.Reversed().(*U).Rename("w_qsub_const"), nil
}

// Swap exchanges two equal-width registers bit by bit using the
// three-CX construction.
func Swap(aIn, bIn []int) (*U, error) {
	if len(aIn) != len(bIn) {
		return nil, fmt.Errorf("%w: swap registers must be equal-width", ErrInvalidRegister)
	}
	if err := checkUnique(aIn, bIn); err != nil {
		return nil, err
	}
	u := NewU("swap")
	for i := range aIn {
		a, b := aIn[i], bIn[i]
		u.Append(NewCX(a, b), NewCX(b, a), NewCX(a, b))
	}
	return u, nil
}

// ModAdd emits |a⟩|b⟩|N⟩|0⟩ → |a⟩|a+b mod N⟩|N⟩|0⟩, with the modulus
// held in the nIn register (value num) and t as a scratch flag qubit.
func ModAdd(a, b, nIn, zero []int, t, num int) (*U, error) {
	if len(a) != len(b) || len(nIn) != len(b) || len(zero) != len(b) || len(b) == 0 {
		return nil, fmt.Errorf("%w: modular adder registers must be equal-width", ErrInvalidRegister)
	}
	if num < 0 || num>>(len(nIn)-1) != 0 {
		return nil, fmt.Errorf("%w: modulus %d for %d-bit register", ErrInvalidRegister, num, len(nIn))
	}
	if err := checkUnique(a, b, nIn, zero, []int{t}); err != nil {
		return nil, err
	}

	add := func(x []int) (*U, error) { return FullAdder(x, b, zero) }
	sub := func(x []int) (*U, error) { return Subtract(x, b, zero) }
	u := NewU("moduler_adder")

	// (1) |a⟩|b⟩ → |a⟩|a+b⟩
	step, err := add(a)
	if err != nil {
		return nil, err
	}
	u.Append(step)
	// (2) |a+b⟩|N⟩ → |a+b-N⟩|N⟩
	if step, err = sub(nIn); err != nil {
		return nil, err
	}
	u.Append(step)
	// (3) flag the sign of a+b-N into t
	bMax := b[len(b)-1]
	u.Append(NewX(bMax), NewCX(bMax, t), NewX(bMax))
	// (4) conditionally clear the modulus register
	for idx := 0; idx < len(nIn); idx++ {
		if (num>>idx)&1 == 1 {
			u.Append(NewCX(t, nIn[idx]))
		}
	}
	// (5) add back N (or zero) to undo the subtraction when a+b < N
	if step, err = add(nIn); err != nil {
		return nil, err
	}
	u.Append(step)
	// (6) restore the modulus register
	for idx := 0; idx < len(nIn); idx++ {
		if (num>>idx)&1 == 1 {
			u.Append(NewCX(t, nIn[idx]))
		}
	}
	// (7) |a⟩|a+b mod N⟩ → |a⟩|b mod N - a⟩, exposing the flag bit
	if step, err = sub(a); err != nil {
		return nil, err
	}
	u.Append(step)
	// (8) uncompute t
	u.Append(NewCX(bMax, t))
	// (9) redo the addition
	if step, err = add(a); err != nil {
		return nil, err
	}
	u.Append(step)

	return u, nil
}

// ModAddConst emits |b⟩|0⟩ → |b + a mod N⟩|0⟩ for constants a and N,
// using one scratch overflow qubit that ends back at |0⟩.
func ModAddConst(b []int, overflow, aConst, nConst int) (*U, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty register", ErrInvalidRegister)
	}
	if err := checkUnique(b, []int{overflow}); err != nil {
		return nil, err
	}

	u := NewU("mod_add_const")
	// (1) |b⟩ → |a+b⟩
	step, err := OverflowAddConst(b, overflow, aConst)
	if err != nil {
		return nil, err
	}
	u.Append(step)
	// (2) |a+b⟩ → |a+b-N⟩; overflow records the borrow
	if step, err = OverflowSubConst(b, overflow, nConst); err != nil {
		return nil, err
	}
	u.Append(step)
	// (3) add N back only when the subtraction went negative
	addN, err := WrappingAddConst(b, nConst)
	if err != nil {
		return nil, err
	}
	u.Append(CUFromU(overflow, addN.Rename("cu-add_N")))
	// (4) |a+b mod N⟩ → |b mod N - a⟩, exposing the borrow of step (1)
	if step, err = OverflowSubConst(b, overflow, aConst); err != nil {
		return nil, err
	}
	u.Append(step)
	// (5) uncompute the flag
	u.Append(NewX(overflow))
	// (6) redo the addition
	if step, err = WrappingAddConst(b, aConst); err != nil {
		return nil, err
	}
	u.Append(step)

	return u, nil
}

// CMMConst is the controlled modular multiplier:
// |x⟩|0⟩|0⟩|cont⟩ → |x⟩|a·x mod N⟩|0⟩|cont⟩ when cont is set, or
// |x⟩|x⟩|0⟩|cont⟩ (a plain copy) when it is not.
func CMMConst(x, tarReg []int, overflow, cont, aConst, nConst int) (*U, error) {
	if len(tarReg) != len(x) || len(x) == 0 {
		return nil, fmt.Errorf("%w: multiplier registers must be equal-width", ErrInvalidRegister)
	}
	if aConst < 0 || aConst >= 1<<len(x) || nConst <= 0 || nConst >= 1<<len(x) {
		return nil, fmt.Errorf("%w: constants %d, %d for %d-bit register", ErrInvalidRegister, aConst, nConst, len(x))
	}
	if err := checkUnique(x, tarReg, []int{cont, overflow}); err != nil {
		return nil, err
	}

	// Shift-and-add: one controlled modular adder per bit of x.
	mul := make([]Operator, len(x))
	for i := range x {
		adder, err := ModAddConst(tarReg, overflow, (aConst<<i)%nConst, nConst)
		if err != nil {
			return nil, err
		}
		mul[i] = CUFromU(x[i], adder)
	}

	u := NewU("cmm_const", NewCU(cont, "cu-mmul", mul...))
	// When cont is clear, copy x into the target register so the block
	// stays reversible.
	u.Append(NewX(cont))
	for i := range x {
		u.Append(NewCCX(cont, x[i], tarReg[i]))
	}
	u.Append(NewX(cont))

	return u, nil
}

// MEConst is the modular exponentiation block used by order finding:
// |x⟩|0⟩|0⟩ → |x⟩|a^x mod N⟩|0⟩. aConst must be coprime with nConst so
// each multiplier stage can be uncomputed with the inverse constant.
func MEConst(x, aX, zero []int, overflow, aConst, nConst int) (*U, error) {
	if len(zero) != len(aX) || len(aX) < 1 {
		return nil, fmt.Errorf("%w: exponentiation registers must be equal-width", ErrInvalidRegister)
	}
	if aConst <= 0 || nConst <= 0 || !IsCoprime(aConst, nConst) {
		return nil, fmt.Errorf("%w: %d and %d are not coprime", ErrInvalidRegister, aConst, nConst)
	}
	if err := checkUnique(x, aX, zero, []int{overflow}); err != nil {
		return nil, err
	}

	u := NewU("me_const", NewX(aX[0]))
	for i := range x {
		cAxi := ModPower(aConst, 1<<i, nConst)
		cInv := ModInv(cAxi, nConst)
		// |aX⟩|0⟩ → |aX⟩|aX · a^2^i mod N⟩, controlled on x[i]
		cmm, err := CMMConst(aX, zero, overflow, x[i], cAxi, nConst)
		if err != nil {
			return nil, err
		}
		sw, err := Swap(aX, zero)
		if err != nil {
			return nil, err
		}
		// Uncompute the old register by multiplying with the inverse.
		icmm, err := CMMConst(aX, zero, overflow, x[i], cInv, nConst)
		if err != nil {
			return nil, err
		}
		u.Append(cmm, sw, icmm.Reversed())
	}
	return u, nil
}

// QFT emits the quantum Fourier transform on the register x:
// |j⟩ → (1/√2^n) Σ_k exp(i2πjk/2^n)|k⟩.
func QFT(x []int) (*U, error) {
	if err := checkUnique(x); err != nil {
		return nil, err
	}
	n := len(x)

	a := make([]int, n/2)
	b := make([]int, n/2)
	for i := 0; i < n/2; i++ {
		a[i] = x[i]
		b[i] = x[n-i-1]
	}
	sw, err := Swap(a, b)
	if err != nil {
		return nil, err
	}

	u := NewU("qft", sw)
	for i := 0; i < n; i++ {
		u.Append(NewH(x[i]))
		for j := i + 1; j < n; j++ {
			angle := 2.0 * math.Pi * math.Exp2(float64(-(j+1-i)))
			u.Append(NewCU(x[j], fmt.Sprintf("r_+2^-%d", j+1-i), NewR(x[i], angle)))
		}
	}
	return u, nil
}

// InvQFT is the inverse Fourier transform, the reversed QFT ladder with
// negated rotation angles.
func InvQFT(x []int) (*U, error) {
	u, err := QFT(x)
	if err != nil {
		return nil, err
	}
	return u.Reversed().(*U).Rename("iqft"), nil
}
