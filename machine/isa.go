package machine

import "fmt"

/*
	The instruction set is stack-oriented. Almost every opcode reads its
	operand(s) off the top of the data stack (TOS plus whatever the stack
	holds underneath it); the exceptions are the addressing-mode machinery
	itself (LD/ST and friends) which first has to resolve an effective
	address before the opcode runs.

	Opcode groups, in the order the control unit relies on for its range
	checks (see IsMathLogicBranch / IsBranch below):

		math/logic/compare  cla neg inc dec not and or add sub cmp mul div sxtb
		branch              beq bgt blt
		memory              ld st
		stack               swap dup pop
		subroutine          call jump ret
		io                  in out
		control             hlt nop

	cla, neg, inc, dec, not are one-operand (consume TOS only).
	and, or, add, sub, cmp, mul, div are two-operand (consume TOS and the
	next stack slot). cmp discards its result, only flags survive. beq,
	bgt, blt are two-operand and yield 1/0 for the branch condition but
	never write IP themselves - the control unit does that.

	sxtb is reserved: no micro-sequence is defined for it anywhere in the
	reference implementation, so ControlUnit traps it as unimplemented.
*/

// Opcode is a closed, ordered set of mnemonics. The numeric value assigned
// to each constant is load-bearing: ControlUnit classifies instructions by
// comparing indices (IsMathLogicBranch, IsBranch), so the order below must
// never change.
type Opcode int

const (
	CLA Opcode = iota
	NEG
	INC
	DEC
	NOT
	AND
	OR
	ADD
	SUB
	CMP
	MUL
	DIV
	SXTB
	BEQ
	BGT
	BLT

	LD
	ST

	SWAP
	DUP
	POP

	CALL
	JUMP
	RET

	IN
	OUT

	HLT
	NOP
)

var opcodeNames = map[Opcode]string{
	CLA: "cla", NEG: "neg", INC: "inc", DEC: "dec", NOT: "not",
	AND: "and", OR: "or", ADD: "add", SUB: "sub", CMP: "cmp",
	MUL: "mul", DIV: "div", SXTB: "sxtb",
	BEQ: "beq", BGT: "bgt", BLT: "blt",
	LD: "ld", ST: "st",
	SWAP: "swap", DUP: "dup", POP: "pop",
	CALL: "call", JUMP: "jump", RET: "ret",
	IN: "in", OUT: "out",
	HLT: "hlt", NOP: "nop",
}

var mnemonicToOpcode map[string]Opcode

func init() {
	mnemonicToOpcode = make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		mnemonicToOpcode[name] = op
	}
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("opcode(%d)", int(o))
}

// OpcodeFromMnemonic looks up an Opcode by its source-level mnemonic.
func OpcodeFromMnemonic(mnemonic string) (Opcode, bool) {
	op, ok := mnemonicToOpcode[mnemonic]
	return op, ok
}

// IsMathLogicBranch reports whether opcode index <= BLT, the "math/logic/
// branch group" from spec.md 3.
func (o Opcode) IsMathLogicBranch() bool {
	return o <= BLT
}

// IsBranch reports whether opcode is in {BEQ, BGT, BLT}.
func (o Opcode) IsBranch() bool {
	return o >= BEQ && o <= BLT
}

// IsOneOperand reports whether the opcode consumes only TOS.
func (o Opcode) IsOneOperand() bool {
	switch o {
	case CLA, NEG, INC, DEC, NOT:
		return true
	default:
		return false
	}
}

// IsTwoOperand reports whether the opcode also pops a second stack value.
func (o Opcode) IsTwoOperand() bool {
	switch o {
	case AND, OR, ADD, SUB, CMP, MUL, DIV, BEQ, BGT, BLT:
		return true
	default:
		return false
	}
}

// Addressing selects how an instruction's operand word is located.
type Addressing int

const (
	DirectAbs Addressing = iota
	DirectShift
	Load
	PostInc
	PostDec
	NoAddressing
)

var addressingNames = map[Addressing]string{
	DirectAbs:    "DIRECT_ABS",
	DirectShift:  "DIRECT_SHIFT",
	Load:         "LOAD",
	PostInc:      "POST_INC",
	PostDec:      "POST_DEC",
	NoAddressing: "NONE",
}

func (a Addressing) String() string {
	if name, ok := addressingNames[a]; ok {
		return name
	}
	return fmt.Sprintf("addressing(%d)", int(a))
}

// Instruction is one record of the code image. Arg is nil for
// NoAddressing instructions other than WORD data, a decimal string for
// resolved source operands, and, for the NOP records that WORD emits, the
// literal as an int32 straight from the translator (or as a decimal string
// after DecodeImage).
type Instruction struct {
	Index      int
	Opcode     Opcode
	Arg        any
	Addressing Addressing
}

// ArgString returns Arg as a decimal string, assuming it has already been
// resolved by the translator's second pass (or is a lowered int32).
func (i Instruction) ArgString() string {
	switch v := i.Arg.(type) {
	case nil:
		return ""
	case string:
		return v
	case int32:
		return fmt.Sprintf("%d", v)
	case int:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ArgInt32 parses Arg as a decimal integer. Used once operands have been
// fully resolved (no more labels).
func (i Instruction) ArgInt32() (int32, error) {
	switch v := i.Arg.(type) {
	case int32:
		return v, nil
	case int:
		return int32(v), nil
	case string:
		var n int64
		_, err := fmt.Sscanf(v, "%d", &n)
		if err != nil {
			return 0, fmt.Errorf("instruction %d: malformed arg %q: %w", i.Index, v, err)
		}
		return int32(n), nil
	default:
		return 0, fmt.Errorf("instruction %d: missing arg", i.Index)
	}
}

// shortNote renders an instruction the way the control unit's trace line
// does: opcode immediately followed by arg, no whitespace. Used for CR/DR
// trace rendering (spec.md 9, "CR/DR short-note rendering").
func (i Instruction) shortNote() string {
	if i.Addressing == NoAddressing || i.Arg == nil {
		return i.Opcode.String()
	}
	return i.Opcode.String() + i.ArgString()
}
