package machine

const (
	maxInt32 = int64(1<<31 - 1)
	minInt32 = -int64(1 << 31)
)

// ALU is a pure combinational unit: it has no memory of its own beyond the
// two input latches and the last computed value/flags. Every field is
// re-derived on each DoOperation call.
type ALU struct {
	FirstValue  int64
	SecondValue int64
	Value       int64
	N, Z, V     bool
}

// aluUnary and aluBinary implement the one/two-operand math, logic and
// branch opcodes. Branch ops yield 1/0 and never touch IP themselves.
var aluUnary = map[Opcode]func(x int64) int64{
	CLA: func(x int64) int64 { return 0 },
	NEG: func(x int64) int64 { return -x },
	INC: func(x int64) int64 { return x + 1 },
	DEC: func(x int64) int64 { return x - 1 },
	NOT: func(x int64) int64 { return ^x },
}

var aluBinary = map[Opcode]func(x, y int64) int64{
	AND: func(x, y int64) int64 { return x & y },
	OR:  func(x, y int64) int64 { return x | y },
	ADD: func(x, y int64) int64 { return x + y },
	SUB: func(x, y int64) int64 { return x - y },
	CMP: func(x, y int64) int64 { return x - y },
	MUL: func(x, y int64) int64 { return x * y },
	DIV: func(x, y int64) int64 { return x / y },
	BEQ: func(x, y int64) int64 {
		if x == y {
			return 1
		}
		return 0
	},
	BGT: func(x, y int64) int64 {
		if x > y {
			return 1
		}
		return 0
	},
	BLT: func(x, y int64) int64 {
		if x < y {
			return 1
		}
		return 0
	},
}

// DoOperation performs op against FirstValue (and SecondValue for
// two-operand opcodes), writing Value and re-deriving N/Z/V. A nil op
// pointer (None) is a passthrough: Value <- FirstValue.
func (a *ALU) DoOperation(op *Opcode) {
	var result int64
	if op == nil {
		result = a.FirstValue
	} else if fn, ok := aluUnary[*op]; ok {
		result = fn(a.FirstValue)
	} else if fn, ok := aluBinary[*op]; ok {
		result = fn(a.FirstValue, a.SecondValue)
	} else {
		result = a.FirstValue
	}

	a.Value = a.setFlags(result)
}

// floorMod returns x mod m the way Python's %= does against a positive
// modulus: always in [0, m), never negative. Go's % truncates toward zero
// instead, which gives the wrong answer for every negative x that isn't an
// exact multiple of m.
func floorMod(x, m int64) int64 {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// setFlags derives N/Z/V from result and wraps it modulo 2^31, matching
// spec.md 4.1 and the original ALU.set_flags exactly.
func (a *ALU) setFlags(result int64) int64 {
	a.N = result < 0
	a.Z = result == 0
	a.V = false

	if result < minInt32 {
		result = floorMod(result, -minInt32)
		a.V = true
	} else if result > maxInt32 {
		result = floorMod(result, -minInt32)
		a.V = true
	}

	return result
}
