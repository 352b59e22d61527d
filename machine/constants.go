package machine

// Configuration constants, spec.md 6. StackSize lives in stack.go since
// Stack itself needs it; the other two live here.
const (
	// SizeForVars is the number of data-word slots appended after the
	// code image to size a fresh Memory.
	SizeForVars = 150

	// InstructionLimit is the safety valve on ControlUnit.Run: exceeding
	// it logs a warning and returns normally rather than erroring.
	InstructionLimit = 100000
)
