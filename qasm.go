package qit

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// OPENQASM 2.0 subset parser. It covers the gate dialect the simulator
// can express directly: h/x/y/z, the phase family s/sdg/t/tdg, the
// parametrized rz/p/u1 rotations, cx and ccx. creg declarations,
// barriers and measurements are accepted and ignored; everything else is
// a parse error with a line number.

// paramPattern matches a single parameter value: numbers, pi expressions,
// or combinations. Examples: "1.5707", "pi", "pi/2", "3*pi/4", "-pi".
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

var (
	qasmSingleRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	qasmSingleParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	qasmTwoQubitRegex    = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	qasmThreeQubitRegex  = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	qasmMeasureRegex     = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*(\w+)\[(\d+)\];?$`)
	qasmQregRegex        = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)

	// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4,
	// -pi, -pi/2.
	piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)
)

// Program is a parsed QASM circuit: a qubit count and the composite gate
// holding the full instruction sequence.
type Program struct {
	Size    int
	Circuit *U
}

// Run applies the program to |0…0⟩ and returns the final state.
func (p *Program) Run() (*Qubits, error) {
	q, err := Zeros(p.Size)
	if err != nil {
		return nil, err
	}
	return p.Circuit.Apply(q)
}

// ParseQASM parses QASM source text into a Program.
func ParseQASM(src string) (*Program, error) {
	prog := &Program{Circuit: NewU("qasm")}

	for lineNum, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "//"):
			continue
		case strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include"):
			continue
		case strings.HasPrefix(line, "qreg"):
			m := qasmQregRegex.FindStringSubmatch(line)
			if m == nil {
				return nil, parseErr(lineNum, line, "malformed qreg")
			}
			n, _ := strconv.Atoi(m[2])
			if prog.Size != 0 {
				return nil, parseErr(lineNum, line, "only one qreg is supported")
			}
			if n <= 0 || n > MaxQubits {
				return nil, parseErr(lineNum, line, "qreg size out of range")
			}
			prog.Size = n
			continue
		case strings.HasPrefix(line, "creg") || strings.HasPrefix(line, "barrier"):
			continue
		}

		if prog.Size == 0 {
			return nil, parseErr(lineNum, line, "gate before qreg declaration")
		}

		if qasmMeasureRegex.MatchString(line) {
			// Measurement is a read-out concern; the state keeps all
			// amplitudes.
			continue
		}

		if m := qasmSingleParamRegex.FindStringSubmatch(line); m != nil {
			theta, ok := parseParamExpr(m[2])
			if !ok {
				return nil, parseErr(lineNum, line, "bad parameter")
			}
			target, _ := strconv.Atoi(m[3])
			switch strings.ToLower(m[1]) {
			case "rz", "p", "u1":
				prog.Circuit.Append(NewR(target, theta))
			default:
				return nil, parseErr(lineNum, line, "unsupported parametrized gate")
			}
			continue
		}

		if m := qasmThreeQubitRegex.FindStringSubmatch(line); m != nil {
			c1, _ := strconv.Atoi(m[2])
			c2, _ := strconv.Atoi(m[3])
			target, _ := strconv.Atoi(m[4])
			switch strings.ToLower(m[1]) {
			case "ccx", "toffoli":
				prog.Circuit.Append(NewCCX(c1, c2, target))
			default:
				return nil, parseErr(lineNum, line, "unsupported three-qubit gate")
			}
			continue
		}

		if m := qasmTwoQubitRegex.FindStringSubmatch(line); m != nil {
			control, _ := strconv.Atoi(m[2])
			target, _ := strconv.Atoi(m[3])
			switch strings.ToLower(m[1]) {
			case "cx", "cnot":
				prog.Circuit.Append(NewCX(control, target))
			case "swap":
				sw, err := Swap([]int{control}, []int{target})
				if err != nil {
					return nil, parseErr(lineNum, line, err.Error())
				}
				prog.Circuit.Append(sw)
			default:
				return nil, parseErr(lineNum, line, "unsupported two-qubit gate")
			}
			continue
		}

		if m := qasmSingleRegex.FindStringSubmatch(line); m != nil {
			target, _ := strconv.Atoi(m[2])
			switch strings.ToLower(m[1]) {
			case "h":
				prog.Circuit.Append(NewH(target))
			case "x":
				prog.Circuit.Append(NewX(target))
			case "y":
				prog.Circuit.Append(NewY(target))
			case "z":
				prog.Circuit.Append(NewZ(target))
			case "s":
				prog.Circuit.Append(NewR(target, math.Pi/2))
			case "sdg":
				prog.Circuit.Append(NewR(target, -math.Pi/2))
			case "t":
				prog.Circuit.Append(NewR(target, math.Pi/4))
			case "tdg":
				prog.Circuit.Append(NewR(target, -math.Pi/4))
			case "id", "i":
				// no-op
			default:
				return nil, parseErr(lineNum, line, "unsupported gate")
			}
			continue
		}

		return nil, parseErr(lineNum, line, "unrecognized statement")
	}

	if prog.Size == 0 {
		return nil, fmt.Errorf("qasm: no qreg declaration")
	}
	return prog, nil
}

func parseErr(lineNum int, line, msg string) error {
	return fmt.Errorf("qasm: line %d: %s: %q", lineNum+1, msg, line)
}

// parseParamExpr parses a parameter expression, supporting plain numbers
// and pi expressions such as "pi/2", "3*pi/4" or "-pi".
func parseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	s = strings.ToLower(s)
	m := piExprRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	coeff := 1.0
	if m[2] != "" {
		var err error
		if coeff, err = strconv.ParseFloat(m[2], 64); err != nil {
			return 0, false
		}
	}
	val := coeff * math.Pi
	if m[3] != "" {
		denom, err := strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		val /= denom
	}
	if m[1] == "-" {
		val = -val
	}
	return val, true
}
