package machine

import "fmt"

// Cell is a tagged union: a memory word holds either a structured
// Instruction or a plain data integer, never both. The zero Cell is a data
// word holding 0 (mirrors an all-zero freshly allocated image).
type Cell struct {
	instr   Instruction
	isInstr bool
	data    int32
}

func instrCell(i Instruction) Cell { return Cell{instr: i, isInstr: true} }
func dataCell(v int32) Cell        { return Cell{data: v} }

// Instruction returns the cell's Instruction and true, or the zero
// Instruction and false if this cell holds a data word.
func (c Cell) Instruction() (Instruction, bool) {
	if !c.isInstr {
		return Instruction{}, false
	}
	return c.instr, true
}

// Data returns the cell's integer value. If the cell holds an Instruction
// this is always 0 - callers must check Instruction() first when they
// expect a data word (Memory.Read enforces this).
func (c Cell) Data() int32 {
	if c.isInstr {
		return 0
	}
	return c.data
}

// Memory is a uniform word-addressable store: the code image occupies the
// low addresses, followed by SizeForVars data slots. Memory itself has no
// notion of a reserved I/O cell - by convention a program places its own
// memory-mapped cell at address IOMemAddr (0) by declaring it as the very
// first WORD in source, the same way any other variable claims an address.
type Memory struct {
	cells []Cell
	// Value is the internal latch written by Read and consumed by Write,
	// matching the single read()/write() pair the original Python Memory
	// exposes instead of a direct index operator.
	Value int32
}

// NewMemory builds a memory image of len(code)+bufferWords cells, with the
// code loaded starting at address 0. Instructions whose opcode is NOP are
// lowered to plain data cells holding their literal arg, per spec.md 4.8 -
// this is what lets a WORD reservation keep a stable index during
// translation yet end up as a raw integer the ALU/memory datapath can add
// to or compare against.
func NewMemory(code []Instruction, bufferWords int) *Memory {
	cells := make([]Cell, len(code)+bufferWords)
	for i, instr := range code {
		cells[i] = lowerCell(instr)
	}
	return &Memory{cells: cells}
}

func lowerCell(instr Instruction) Cell {
	if instr.Opcode != NOP {
		return instrCell(instr)
	}
	v, err := instr.ArgInt32()
	if err != nil {
		v = 0
	}
	return dataCell(v)
}

func (m *Memory) Size() int { return len(m.cells) }

func (m *Memory) boundsCheck(addr int32) error {
	if addr < 0 || int(addr) >= len(m.cells) {
		return fmt.Errorf("%w: address %d (size %d)", ErrSegmentationFault, addr, len(m.cells))
	}
	return nil
}

// Read copies cells[addr] into Value as a data word. It is an error to
// Read an address holding an Instruction - callers that need the
// instruction itself use ReadInstruction.
func (m *Memory) Read(addr int32) error {
	if err := m.boundsCheck(addr); err != nil {
		return err
	}
	cell := m.cells[addr]
	if cell.isInstr {
		return fmt.Errorf("%w: value %s at address %d", ErrWrongInstructionFormat, cell.instr.shortNote(), addr)
	}
	m.Value = cell.data
	return nil
}

// ReadInstruction fetches the Instruction at addr, used by instruction
// fetch. Returns ErrWrongInstructionFormat if the cell holds a data word.
func (m *Memory) ReadInstruction(addr int32) (Instruction, error) {
	if err := m.boundsCheck(addr); err != nil {
		return Instruction{}, err
	}
	cell := m.cells[addr]
	if !cell.isInstr {
		return Instruction{}, fmt.Errorf("%w: value %d at address %d", ErrWrongInstructionFormat, cell.data, addr)
	}
	return cell.instr, nil
}

// Write copies Value into cells[addr] as a data word.
func (m *Memory) Write(addr int32) error {
	if err := m.boundsCheck(addr); err != nil {
		return err
	}
	m.cells[addr] = dataCell(m.Value)
	return nil
}

// LowerNops applies the same NOP-to-data-word rewrite NewMemory applies
// internally, exposed standalone so the loader and tests can inspect a
// fully-lowered cell sequence without constructing a whole Memory.
func LowerNops(code []Instruction) []Cell {
	cells := make([]Cell, len(code))
	for i, instr := range code {
		cells[i] = lowerCell(instr)
	}
	return cells
}
