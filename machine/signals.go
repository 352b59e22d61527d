package machine

// Named multiplexer selectors, making the datapath wiring explicit instead
// of letting latch operations take ad hoc boolean flags (spec.md 4 item
// 5). Mirrors the teacher's Signals-as-small-enums layout.

// DRSource selects what DataPath.LatchDR reads from.
type DRSource int

const (
	DRRead DRSource = iota
	DRWrite
	DRFromALU
)

// TOSSource selects what DataPath.LatchTOS reads from.
type TOSSource int

const (
	TOSFromBR TOSSource = iota
	TOSFromDR
	TOSFromIP
	TOSFromALU
	TOSFromDataStack
	TOSFromCR
)

// IPSource selects what DataPath.LatchIP reads from.
type IPSource int

const (
	IPFromALU IPSource = iota
	IPFromReturnStack
)

// ARSource selects what DataPath.LatchAR reads from.
type ARSource int

const (
	ARFromIP ARSource = iota
	ARFromALU
	ARFromCR
)

// ALUFirstSource selects what feeds ALU.FirstValue.
type ALUFirstSource int

const (
	ALUFirstFromTOS ALUFirstSource = iota
	ALUFirstFromIP
	ALUFirstFromCR
)
