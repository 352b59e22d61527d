package machine

// DataPath holds the register file (IP, TOS, AR, DR, BR), the ALU, the
// data stack and memory. Every exported Latch* method is a single-cycle
// multiplexer write driven by a named selector (spec.md 4.4); none of them
// charges a tick themselves, that's ControlUnit's job.
type DataPath struct {
	IP, TOS, AR, DR, BR Value

	ALU       ALU
	DataStack *Stack
	Memory    *Memory
}

// NewDataPath wires up a fresh datapath over code, with IP initialised to
// 1 per spec.md 3 ("IP ... initially 1").
func NewDataPath(code []Instruction, bufferWords int) *DataPath {
	return &DataPath{
		IP:        NewValue(1),
		DataStack: NewStack(),
		Memory:    NewMemory(code, bufferWords),
	}
}

func deref(v Value) int32 {
	if v == nil {
		return 0
	}
	return *v
}

// LatchDR drives the data register from memory, from memory back out, or
// from the ALU's last result.
func (dp *DataPath) LatchDR(source DRSource) error {
	switch source {
	case DRRead:
		if err := dp.Memory.Read(deref(dp.AR)); err != nil {
			return err
		}
		dp.DR = NewValue(dp.Memory.Value)
	case DRWrite:
		dp.Memory.Value = deref(dp.DR)
		if err := dp.Memory.Write(deref(dp.AR)); err != nil {
			return err
		}
	case DRFromALU:
		dp.DR = NewValue(int32(dp.ALU.Value))
	}
	return nil
}

// LatchTOS drives the TOS register. crArg is only consulted for
// TOSFromCR.
func (dp *DataPath) LatchTOS(source TOSSource, crArg Value) {
	switch source {
	case TOSFromBR:
		dp.TOS = dp.BR
	case TOSFromDR:
		dp.TOS = dp.DR
	case TOSFromIP:
		dp.TOS = dp.IP
	case TOSFromALU:
		dp.TOS = NewValue(int32(dp.ALU.Value))
	case TOSFromDataStack:
		dp.TOS = dp.DataStack.Pop()
	case TOSFromCR:
		dp.TOS = crArg
	}
}

// LatchIP drives the instruction pointer, either from the ALU (the normal
// case) or an explicit value popped off the return stack by RET.
func (dp *DataPath) LatchIP(source IPSource, rsArg Value) {
	switch source {
	case IPFromALU:
		dp.IP = NewValue(int32(dp.ALU.Value))
	case IPFromReturnStack:
		dp.IP = rsArg
	}
}

// LatchAR drives the address register.
func (dp *DataPath) LatchAR(source ARSource, crArg Value) {
	switch source {
	case ARFromIP:
		dp.AR = dp.IP
	case ARFromALU:
		dp.AR = NewValue(int32(dp.ALU.Value))
	case ARFromCR:
		dp.AR = crArg
	}
}

// LatchBR always pulls from the data stack; it's the only source wired to
// the swap buffer.
func (dp *DataPath) LatchBR() {
	dp.BR = dp.DataStack.Pop()
}

// LatchALUFirst drives ALU.FirstValue.
func (dp *DataPath) LatchALUFirst(source ALUFirstSource, crArg Value) {
	switch source {
	case ALUFirstFromTOS:
		dp.ALU.FirstValue = int64(deref(dp.TOS))
	case ALUFirstFromIP:
		dp.ALU.FirstValue = int64(deref(dp.IP))
	case ALUFirstFromCR:
		dp.ALU.FirstValue = int64(deref(crArg))
	}
}

// AluOperation runs op against the ALU's latched FirstValue, popping the
// data stack into SecondValue first when op is two-operand (spec.md 4.4).
// op == nil is the passthrough ("None command").
func (dp *DataPath) AluOperation(op *Opcode) {
	if op != nil && op.IsTwoOperand() {
		dp.ALU.SecondValue = int64(deref(dp.DataStack.Pop()))
	}
	dp.ALU.DoOperation(op)
}

// DataStackPush pushes the current TOS onto the data stack.
func (dp *DataPath) DataStackPush() error {
	return dp.DataStack.Push(dp.TOS)
}
