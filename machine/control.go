package machine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ControlUnit drives the fetch/address/operand/execute micro-sequences over
// a DataPath, charging exactly the ticks spec.md 4.6 calls out by name.
// CR (the latched current instruction) and the return stack live here
// rather than on DataPath, since nothing in the datapath proper ever reads
// them except through the signals ControlUnit itself issues.
type ControlUnit struct {
	dp *DataPath
	io *IOController

	cr          Instruction
	returnStack *Stack

	ticks               int
	instructionsExecuted int

	log *zap.SugaredLogger
}

// NewControlUnit wires a ControlUnit over dp/io. log may be nil, in which
// case trace lines are dropped (zap.NewNop()).
func NewControlUnit(dp *DataPath, io *IOController, log *zap.SugaredLogger) *ControlUnit {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ControlUnit{
		dp:          dp,
		io:          io,
		returnStack: NewStack(),
		log:         log,
	}
}

func (cu *ControlUnit) tick() {
	cu.ticks++
	cu.log.Debugw("tick",
		"tick", cu.ticks,
		"ip", deref(cu.dp.IP),
		"cr", cu.cr.shortNote(),
		"ar", deref(cu.dp.AR),
		"dr", deref(cu.dp.DR),
		"br", deref(cu.dp.BR),
		"tos", deref(cu.dp.TOS),
		"stack", cu.dp.DataStack.Snapshot(),
	)
}

func argValue(instr Instruction) (Value, error) {
	if instr.Addressing == NoAddressing || instr.Arg == nil {
		return nil, nil
	}
	v, err := instr.ArgInt32()
	if err != nil {
		return nil, err
	}
	return NewValue(v), nil
}

// instructionFetch is the 4-tick sequence from spec.md 4.6: AR <- IP,
// CR <- memory[AR], then IP <- IP + 1 through the ALU. DR is not loaded
// with the fetched instruction; it keeps its previous data word.
func (cu *ControlUnit) instructionFetch() error {
	cu.dp.LatchAR(ARFromIP, nil)
	cu.tick()

	instr, err := cu.dp.Memory.ReadInstruction(deref(cu.dp.AR))
	if err != nil {
		return err
	}
	cu.cr = instr
	cu.tick()

	cu.dp.LatchALUFirst(ALUFirstFromIP, nil)
	cu.tick()

	inc := INC
	cu.dp.AluOperation(&inc)
	cu.dp.LatchIP(IPFromALU, nil)
	cu.tick()

	return nil
}

// operandFetch is the shared 2-tick tail of every addressing mode except
// LOAD and NONE: AR <- ALU.value, DR <- memory[AR].
func (cu *ControlUnit) operandFetch() error {
	cu.dp.LatchAR(ARFromALU, nil)
	cu.tick()

	if err := cu.dp.LatchDR(DRRead); err != nil {
		return err
	}
	cu.tick()

	return nil
}

// addressFetch resolves cmd's effective address/operand per its addressing
// mode, matching the per-mode micro-sequences of spec.md 4.6 tick for tick.
func (cu *ControlUnit) addressFetch(cmd Instruction) error {
	arg, err := argValue(cmd)
	if err != nil {
		return err
	}

	switch cmd.Addressing {
	case NoAddressing:
		return nil

	case Load:
		cu.dp.LatchALUFirst(ALUFirstFromCR, arg)
		cu.dp.AluOperation(nil)
		if err := cu.dp.LatchDR(DRFromALU); err != nil {
			return err
		}
		cu.tick()
		return nil

	case DirectAbs:
		if err := cu.dp.DataStackPush(); err != nil {
			return err
		}
		cu.tick()

		cu.dp.LatchALUFirst(ALUFirstFromCR, arg)
		cu.dp.AluOperation(nil)

		if err := cu.dp.LatchDR(DRFromALU); err != nil {
			return err
		}
		cu.tick()

		cu.dp.LatchTOS(TOSFromDataStack, nil)
		cu.tick()

		return cu.operandFetch()

	case DirectShift:
		if err := cu.dp.DataStackPush(); err != nil {
			return err
		}
		cu.tick()

		cu.dp.LatchTOS(TOSFromIP, nil)
		cu.tick()

		if err := cu.dp.DataStackPush(); err != nil {
			return err
		}
		cu.tick()

		cu.dp.LatchTOS(TOSFromCR, arg)
		cu.tick()

		cu.dp.LatchALUFirst(ALUFirstFromTOS, nil)
		add := ADD
		cu.dp.AluOperation(&add)
		cu.tick()

		return cu.operandFetch()

	case PostInc, PostDec:
		if err := cu.dp.DataStackPush(); err != nil {
			return err
		}
		cu.tick()

		cu.dp.LatchAR(ARFromCR, arg)
		cu.tick()

		if err := cu.dp.LatchDR(DRRead); err != nil {
			return err
		}
		cu.tick()

		cu.dp.LatchTOS(TOSFromDR, nil)
		cu.tick()

		cu.dp.LatchALUFirst(ALUFirstFromTOS, nil)
		step := INC
		if cmd.Addressing == PostDec {
			step = DEC
		}
		cu.dp.AluOperation(&step)
		cu.tick()
		cu.tick()

		if err := cu.dp.LatchDR(DRFromALU); err != nil {
			return err
		}
		if err := cu.dp.LatchDR(DRWrite); err != nil {
			return err
		}
		cu.tick()

		cu.dp.LatchALUFirst(ALUFirstFromTOS, nil)
		cu.dp.AluOperation(nil)
		cu.dp.LatchTOS(TOSFromDataStack, nil)
		cu.tick()

		return cu.operandFetch()

	default:
		return fmt.Errorf("unknown addressing mode %v", cmd.Addressing)
	}
}

// executionFetch dispatches cmd.Opcode to its micro-sequence and always
// charges the one tick that "concludes execution_fetch" (spec.md 4.6),
// on top of whatever ticks the dispatch itself charged.
func (cu *ControlUnit) executionFetch(cmd Instruction) error {
	defer cu.tick()

	switch {
	case cmd.Opcode == SXTB:
		return fmt.Errorf("%w: sxtb", ErrUnimplemented)

	case cmd.Opcode.IsMathLogicBranch():
		cu.dp.LatchALUFirst(ALUFirstFromTOS, nil)
		cu.dp.AluOperation(&cmd.Opcode)

		if cmd.Opcode.IsBranch() && cu.dp.ALU.Value == 1 {
			cu.tick()
			cu.dp.LatchALUFirst(ALUFirstFromIP, nil)
			inc := INC
			cu.dp.AluOperation(&inc)
			cu.dp.LatchIP(IPFromALU, nil)
		} else if cmd.Opcode != CMP {
			cu.dp.LatchTOS(TOSFromALU, nil)
		}
		return nil

	case cmd.Opcode == LD:
		if err := cu.dp.DataStackPush(); err != nil {
			return err
		}
		cu.tick()
		cu.dp.LatchTOS(TOSFromDR, nil)
		return nil

	case cmd.Opcode == ST:
		cu.dp.LatchALUFirst(ALUFirstFromTOS, nil)
		cu.dp.AluOperation(nil)
		if err := cu.dp.LatchDR(DRFromALU); err != nil {
			return err
		}
		cu.tick()
		return cu.dp.LatchDR(DRWrite)

	case cmd.Opcode == CALL:
		if err := cu.returnStack.Push(cu.dp.IP); err != nil {
			return err
		}
		cu.tick()
		cu.dp.LatchIP(IPFromALU, nil)
		return nil

	case cmd.Opcode == JUMP:
		cu.dp.LatchIP(IPFromALU, nil)
		return nil

	case cmd.Opcode == RET:
		cu.dp.LatchIP(IPFromReturnStack, cu.returnStack.Pop())
		return nil

	case cmd.Opcode == SWAP:
		cu.dp.LatchBR()
		cu.tick()
		if err := cu.dp.DataStackPush(); err != nil {
			return err
		}
		cu.tick()
		cu.dp.LatchTOS(TOSFromBR, nil)
		return nil

	case cmd.Opcode == DUP:
		return cu.dp.DataStackPush()

	case cmd.Opcode == POP:
		cu.dp.LatchTOS(TOSFromDataStack, nil)
		return nil

	case cmd.Opcode == IN:
		return cu.io.Get()

	case cmd.Opcode == OUT:
		return cu.io.Send()

	case cmd.Opcode == HLT:
		return ErrHalt

	case cmd.Opcode == NOP:
		return nil

	default:
		return fmt.Errorf("unknown opcode %v", cmd.Opcode)
	}
}

// step runs one full instruction cycle: instruction_fetch, address_fetch,
// execution_fetch.
func (cu *ControlUnit) step() error {
	if err := cu.instructionFetch(); err != nil {
		return err
	}
	if err := cu.addressFetch(cu.cr); err != nil {
		return err
	}
	return cu.executionFetch(cu.cr)
}

// Run executes instructions until HLT, input exhaustion, or
// InstructionLimit is reached. It returns a non-nil error only for genuine
// runtime-bound violations (stack overflow, segmentation fault, wrong
// instruction format, unimplemented opcode) - clean termination and the
// instruction-limit safety valve both return nil.
func (cu *ControlUnit) Run() error {
	for cu.instructionsExecuted < InstructionLimit {
		err := cu.step()
		cu.instructionsExecuted++

		if err == nil {
			continue
		}
		if errors.Is(err, ErrHalt) || errors.Is(err, ErrInputExhausted) {
			return nil
		}
		return err
	}

	cu.log.Warnw("instruction_limit exceeded",
		"limit", InstructionLimit,
		"ticks", cu.ticks,
	)
	return nil
}

// ReturnStackDepth reports how many pending return addresses CALL has
// pushed that RET has not yet consumed.
func (cu *ControlUnit) ReturnStackDepth() int { return cu.returnStack.Len() }

// InstructionsExecuted reports how many fetch/execute cycles Run completed.
func (cu *ControlUnit) InstructionsExecuted() int { return cu.instructionsExecuted }

// Ticks reports the total tick count charged across Run.
func (cu *ControlUnit) Ticks() int { return cu.ticks }
