package machine

// IOMemAddr is the reserved memory-mapped cell address used for all
// input/output traffic (spec.md 4.2, 4.5).
const IOMemAddr int32 = 0

// OutputMode selects how IOController.Finish renders the output buffer.
type OutputMode int

const (
	// OutputText writes one character per output word.
	OutputText OutputMode = iota
	// OutputNumeric writes decimal values separated by spaces.
	OutputNumeric
)

// ParseOutputMode maps the CLI's "text"/"numeric" positional argument.
func ParseOutputMode(s string) (OutputMode, error) {
	switch s {
	case "text":
		return OutputText, nil
	case "numeric":
		return OutputNumeric, nil
	default:
		return 0, &TranslationError{Message: "unknown output mode", Token: s}
	}
}

// IOController mediates the reserved memory-mapped I/O cell: Get feeds the
// next input element in, Send drains whatever the program wrote back out.
// The input buffer's first element is its own reserved length, matching
// the length-prefixed input contract in spec.md 6; Get/Send never inspect
// that length directly, it's just the first word a program can IN.
type IOController struct {
	memory *Memory

	input  []int32
	cursor int

	output []int32
	mode   OutputMode
}

// NewIOController wires an IOController to dp's memory and an
// already-length-prefixed input buffer.
func NewIOController(dp *DataPath, input []int32, mode OutputMode) *IOController {
	return &IOController{memory: dp.Memory, input: input, mode: mode}
}

// Get writes the next input word into the memory-mapped I/O cell and
// advances the cursor. Returns ErrInputExhausted once the buffer runs dry,
// which ControlUnit.Run treats identically to HLT.
func (io *IOController) Get() error {
	if io.cursor >= len(io.input) {
		return ErrInputExhausted
	}
	io.memory.Value = io.input[io.cursor]
	io.cursor++
	return io.memory.Write(IOMemAddr)
}

// Send reads the memory-mapped I/O cell and appends it to the output
// buffer.
func (io *IOController) Send() error {
	if err := io.memory.Read(IOMemAddr); err != nil {
		return err
	}
	io.output = append(io.output, io.memory.Value)
	return nil
}

// Output returns the accumulated output buffer, for callers that want to
// hand it to WriteOutputFile themselves (tests, REPL-style drivers).
func (io *IOController) Output() []int32 {
	return io.output
}

// Finish serialises the output buffer to path, using the framing rules
// from spec.md 6: "text" writes each word as its rune, "numeric" writes
// decimals separated by spaces.
func (io *IOController) Finish(path string) error {
	return WriteOutputFile(path, io.output, io.mode)
}
