package qit

import (
	"math"
	"strings"
	"testing"
)

func TestParseQASMBell(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];`

	prog, err := ParseQASM(qasm)
	if err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if prog.Size != 2 {
		t.Fatalf("expected 2 qubits, got %d", prog.Size)
	}
	if prog.Circuit.Len() != 2 {
		t.Fatalf("expected 2 gates (measure is ignored), got %d", prog.Circuit.Len())
	}

	q, err := prog.Run()
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	probs := q.Probs()
	for i, want := range []float64{0.5, 0, 0, 0.5} {
		if math.Abs(probs[i]-want) > 1e-10 {
			t.Errorf("prob[%d] = %g, want %g", i, probs[i], want)
		}
	}
}

func TestParseQASMGateSet(t *testing.T) {
	qasm := `OPENQASM 2.0;
// a kitchen-sink program
qreg q[3];
creg c[3];
x q[0];
y q[1];
z q[2];
s q[0];
sdg q[0];
t q[1];
tdg q[1];
rz(pi/2) q[2];
p(-pi/4) q[2];
u1(0.25) q[0];
swap q[0], q[1];
ccx q[0], q[1], q[2];
barrier q;
measure q[0] -> c[0];`

	prog, err := ParseQASM(qasm)
	if err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	// 12 statements survive: barrier, creg and measure are dropped.
	if prog.Circuit.Len() != 12 {
		t.Fatalf("expected 12 gates, got %d", prog.Circuit.Len())
	}
	if _, err := prog.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}
}

func TestParseQASMPhaseGates(t *testing.T) {
	// s·sdg and t·tdg cancel, so the program acts as X on qubit 0.
	qasm := `OPENQASM 2.0;
qreg q[1];
x q[0];
s q[0];
sdg q[0];
t q[0];
tdg q[0];`

	prog, err := ParseQASM(qasm)
	if err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	q, err := prog.Run()
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got := q.PopMostPlausible(); got != 1 {
		t.Errorf("expected |1⟩, got index %d", got)
	}
	if math.Abs(real(q.Amps[1])-1.0) > 1e-10 || math.Abs(imag(q.Amps[1])) > 1e-10 {
		t.Errorf("phase did not cancel: amp = %v", q.Amps[1])
	}
}

func TestParseQASMRotationEqualsZ(t *testing.T) {
	qasm := `OPENQASM 2.0;
qreg q[1];
x q[0];
rz(pi) q[0];`

	prog, err := ParseQASM(qasm)
	if err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	q, err := prog.Run()
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if math.Abs(real(q.Amps[1])+1.0) > 1e-10 {
		t.Errorf("rz(pi) on |1⟩: amp = %v, want -1", q.Amps[1])
	}
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"no qreg", `OPENQASM 2.0;
h q[0];`, "gate before qreg"},
		{"missing qreg entirely", `OPENQASM 2.0;`, "no qreg"},
		{"two qregs", `qreg q[2];
qreg r[2];`, "only one qreg"},
		{"qreg too large", `qreg q[40];`, "out of range"},
		{"unknown gate", `qreg q[2];
frobnicate q[0];`, "unsupported gate"},
		{"unknown two-qubit gate", `qreg q[2];
cz q[0], q[1];`, "unsupported two-qubit gate"},
		{"bad statement", `qreg q[2];
h q[0] q[1];`, "unrecognized statement"},
	}

	for _, tt := range tests {
		_, err := ParseQASM(tt.src)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.msg) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.msg)
		}
	}
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		// Plain numbers
		{"1.5707", 1.5707, true},
		{"3.14", 3.14, true},
		{"-0.5", -0.5, true},
		{"0", 0, true},
		{"42", 42, true},

		// Pi constant
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"Pi", math.Pi, true},

		// Pi fractions
		{"pi/2", math.Pi / 2, true},
		{"pi/4", math.Pi / 4, true},
		{"pi/3", math.Pi / 3, true},
		{"pi/8", math.Pi / 8, true},

		// Coefficients
		{"2pi", 2 * math.Pi, true},
		{"2*pi", 2 * math.Pi, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"2*pi/3", 2 * math.Pi / 3, true},

		// Negative
		{"-pi", -math.Pi, true},
		{"-pi/2", -math.Pi / 2, true},
		{"-3*pi/4", -3 * math.Pi / 4, true},
		{"-2pi", -2 * math.Pi, true},

		// Whitespace
		{" pi ", math.Pi, true},
		{" pi / 2 ", math.Pi / 2, true},
		{" 3 * pi / 4 ", 3 * math.Pi / 4, true},

		// Invalid
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseParamExpr(tt.input)
		if ok != tt.ok {
			t.Errorf("parseParamExpr(%q): ok=%v, want ok=%v", tt.input, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("parseParamExpr(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}
