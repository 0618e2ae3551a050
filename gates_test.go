package qit

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHadamard(t *testing.T) {
	Convey("H on |0⟩ yields the uniform superposition", t, func() {
		q, err := Zeros(1)
		So(err, ShouldBeNil)
		q, err = NewH(0).Apply(q)
		So(err, ShouldBeNil)
		So(real(q.Amps[0]), ShouldAlmostEqual, 1/math.Sqrt2, tol)
		So(real(q.Amps[1]), ShouldAlmostEqual, 1/math.Sqrt2, tol)
	})

	Convey("H twice on each qubit returns to the basis state", t, func() {
		h0, h1 := NewH(0), NewH(1)
		q, err := Zeros(2)
		So(err, ShouldBeNil)
		for _, g := range []Operator{h0, h1} {
			q, err = g.Apply(q)
			So(err, ShouldBeNil)
		}
		for _, p := range q.Probs() {
			So(p, ShouldAlmostEqual, 0.25, tol)
		}
		for _, g := range []Operator{h0, h1} {
			q, err = g.Apply(q)
			So(err, ShouldBeNil)
		}
		So(q.Probs()[0], ShouldAlmostEqual, 1.0, tol)
	})
}

func TestSelfInverses(t *testing.T) {
	Convey("X, Y, Z applied twice restore the input", t, func() {
		for _, g := range []Operator{NewX(1), NewY(1), NewZ(1)} {
			q, err := FromNum(3, 5)
			So(err, ShouldBeNil)
			q, err = g.Apply(q)
			So(err, ShouldBeNil)
			q, err = g.Apply(q)
			So(err, ShouldBeNil)
			want, _ := FromNum(3, 5)
			So(sameQubits(q, want), ShouldBeTrue)
		}
	})
}

func TestPhaseGates(t *testing.T) {
	Convey("R by pi equals Z", t, func() {
		q0, err := FromNum(2, 1)
		So(err, ShouldBeNil)
		q0, err = NewR(0, math.Pi).Apply(q0)
		So(err, ShouldBeNil)

		q1, err := FromNum(2, 1)
		So(err, ShouldBeNil)
		q1, err = NewZ(0).Apply(q1)
		So(err, ShouldBeNil)

		So(sameQubits(q0, q1), ShouldBeTrue)
	})

	Convey("R composed with its reverse is the identity", t, func() {
		r := NewR(0, math.Pi/3)
		q, err := Zeros(1)
		So(err, ShouldBeNil)
		q, err = NewH(0).Apply(q)
		So(err, ShouldBeNil)
		want := q.Clone()
		q, err = r.Apply(q)
		So(err, ShouldBeNil)
		q, err = r.Reversed().Apply(q)
		So(err, ShouldBeNil)
		So(sameQubits(q, want), ShouldBeTrue)
	})
}

func TestControlledGates(t *testing.T) {
	Convey("CX flips the target only when the control is set", t, func() {
		// |01⟩ with control on qubit 0 → |11⟩
		q, err := FromNum(2, 1)
		So(err, ShouldBeNil)
		q, err = NewCX(0, 1).Apply(q)
		So(err, ShouldBeNil)
		So(q.PopMostPlausible(), ShouldEqual, 3)
		So(q.Probs()[3], ShouldAlmostEqual, 1.0, tol)
	})

	Convey("CX leaves states with a clear control untouched", t, func() {
		q, err := FromNum(2, 1)
		So(err, ShouldBeNil)
		want := q.Clone()
		q, err = NewCX(1, 0).Apply(q)
		So(err, ShouldBeNil)
		So(sameQubits(q, want), ShouldBeTrue)
	})

	Convey("CX across distant qubits", t, func() {
		q, err := FromNum(5, 31)
		So(err, ShouldBeNil)
		q, err = NewCX(0, 4).Apply(q)
		So(err, ShouldBeNil)
		So(q.PopMostPlausible(), ShouldEqual, 15)
	})

	Convey("CCX is a doubly-controlled NOT", t, func() {
		ccx := NewCCX(1, 2, 0)
		for in, out := range map[int]int{0: 0, 3: 3, 5: 5, 6: 7, 7: 6} {
			q, err := FromNum(3, in)
			So(err, ShouldBeNil)
			q, err = ccx.Apply(q)
			So(err, ShouldBeNil)
			So(q.PopMostPlausible(), ShouldEqual, out)
		}
	})

	Convey("CNX requires every control", t, func() {
		cnx := NewCNX([]int{0, 1, 2}, 3)
		q, err := FromNum(4, 7)
		So(err, ShouldBeNil)
		q, err = cnx.Apply(q)
		So(err, ShouldBeNil)
		So(q.PopMostPlausible(), ShouldEqual, 15)

		q, err = FromNum(4, 3)
		So(err, ShouldBeNil)
		q, err = cnx.Apply(q)
		So(err, ShouldBeNil)
		So(q.PopMostPlausible(), ShouldEqual, 3)
	})

	Convey("CU behaves like the equivalent controlled gate", t, func() {
		cx := NewCX(0, 1)
		cu := NewCU(0, "test_cu", NewX(1))
		for num := 0; num < 4; num++ {
			q1, err := FromNum(2, num)
			So(err, ShouldBeNil)
			q2, err := FromNum(2, num)
			So(err, ShouldBeNil)
			q1, err = cx.Apply(q1)
			So(err, ShouldBeNil)
			q2, err = cu.Apply(q2)
			So(err, ShouldBeNil)
			So(sameQubits(q1, q2), ShouldBeTrue)
		}
	})
}

func TestCompositeOrder(t *testing.T) {
	Convey("A composite applies its children in sequence", t, func() {
		ab := NewU("ab", NewH(0), NewZ(0))
		q1, err := Zeros(1)
		So(err, ShouldBeNil)
		q1, err = ab.Apply(q1)
		So(err, ShouldBeNil)

		q2, err := Zeros(1)
		So(err, ShouldBeNil)
		q2, err = NewH(0).Apply(q2)
		So(err, ShouldBeNil)
		q2, err = NewZ(0).Apply(q2)
		So(err, ShouldBeNil)

		So(sameQubits(q1, q2), ShouldBeTrue)
	})

	Convey("Reversing the order changes the result", t, func() {
		ab := NewU("ab", NewH(0), NewZ(0))
		ba := NewU("ba", NewZ(0), NewH(0))

		q1, err := Zeros(1)
		So(err, ShouldBeNil)
		q1, err = ab.Apply(q1)
		So(err, ShouldBeNil)

		q2, err := Zeros(1)
		So(err, ShouldBeNil)
		q2, err = ba.Apply(q2)
		So(err, ShouldBeNil)

		So(sameQubits(q1, q2), ShouldBeFalse)
	})

	Convey("Composites nest and share children", t, func() {
		inner := NewU("bell", NewH(0), NewCX(0, 1))
		first := NewU("first", inner)
		second := NewU("second", inner, inner.Reversed())

		q1, err := Zeros(2)
		So(err, ShouldBeNil)
		q1, err = first.Apply(q1)
		So(err, ShouldBeNil)
		So(q1.Probs()[0], ShouldAlmostEqual, 0.5, tol)
		So(q1.Probs()[3], ShouldAlmostEqual, 0.5, tol)

		// inner followed by its inverse is the identity
		q2, err := Zeros(2)
		So(err, ShouldBeNil)
		q2, err = second.Apply(q2)
		So(err, ShouldBeNil)
		So(q2.Probs()[0], ShouldAlmostEqual, 1.0, tol)
	})

	Convey("Flatten yields the leaf sequence in order", t, func() {
		inner := NewU("inner", NewX(0))
		outer := NewU("outer", NewH(1), inner, NewCU(1, "cz-ish", NewZ(0)))
		leaves := outer.Flatten()
		So(leaves, ShouldHaveLength, 3)
		So(leaves[0].Name(), ShouldEqual, "H(1)")
		So(leaves[1].Name(), ShouldEqual, "X(0)")
	})
}

func TestGateValidation(t *testing.T) {
	Convey("Gates reject qubit indices outside the state", t, func() {
		q, err := Zeros(2)
		So(err, ShouldBeNil)
		_, err = NewX(2).Apply(q)
		So(errors.Is(err, ErrInvalidQubitIndex), ShouldBeTrue)

		q, err = Zeros(2)
		So(err, ShouldBeNil)
		_, err = NewCX(0, 5).Apply(q)
		So(errors.Is(err, ErrInvalidQubitIndex), ShouldBeTrue)
	})

	Convey("A gate may not reuse its control as target", t, func() {
		q, err := Zeros(2)
		So(err, ShouldBeNil)
		_, err = NewCX(1, 1).Apply(q)
		So(errors.Is(err, ErrInvalidQubitIndex), ShouldBeTrue)
	})

	Convey("A CU child may not touch the control qubit", t, func() {
		q, err := Zeros(2)
		So(err, ShouldBeNil)
		_, err = NewCU(0, "bad", NewX(0)).Apply(q)
		So(errors.Is(err, ErrInvalidQubitIndex), ShouldBeTrue)
	})

	Convey("Validation happens before any amplitude changes", t, func() {
		q, err := FromNum(2, 1)
		So(err, ShouldBeNil)
		want := q.Clone()
		_, err = NewU("partial", NewX(0), NewX(9)).Apply(q)
		So(errors.Is(err, ErrInvalidQubitIndex), ShouldBeTrue)
		So(sameQubits(q, want), ShouldBeTrue)
	})
}
