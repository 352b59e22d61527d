package machine

import (
	"errors"
	"fmt"
)

// Sentinel errors, one flat var block the way KTStephano-GVM declares
// errProgramFinished/errSegmentationFault/... - callers use errors.Is to
// classify what went wrong without caring about wrapped context.
var (
	// ErrHalt signals a clean HLT. The simulation loop treats it the same
	// as ErrInputExhausted: stop, return normally.
	ErrHalt = errors.New("halt")

	// ErrInputExhausted is raised by IOController.Get when the input
	// buffer runs dry; spec.md treats this identically to HLT.
	ErrInputExhausted = errors.New("input buffer exhausted")

	// ErrStackOverflow is returned by Stack.Push when the stack is
	// already at StackSize entries.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrSegmentationFault is returned for any out-of-range memory
	// access.
	ErrSegmentationFault = errors.New("segmentation fault")

	// ErrWrongInstructionFormat is returned when a memory cell fetched as
	// an instruction is actually a data word, or vice versa.
	ErrWrongInstructionFormat = errors.New("wrong instruction format")

	// ErrUnimplemented is returned for opcodes reserved but not given a
	// micro-sequence (SXTB; see spec.md 9 Open Questions).
	ErrUnimplemented = errors.New("unimplemented opcode")
)

// TranslationError names the offending source line and token, per
// spec.md 7 ("Source error ... naming the offending token").
type TranslationError struct {
	Line    int
	Token   string
	Message string
}

func (e *TranslationError) Error() string {
	msg := e.Message
	if e.Token != "" {
		msg += ": " + e.Token
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}
