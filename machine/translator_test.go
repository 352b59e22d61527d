package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslateDirectAbs(t *testing.T) {
	code, err := Translate(`
counter: word 0
	ld counter
	hlt
`)
	require.NoError(t, err)
	require.Len(t, code, 3)

	require.Equal(t, NOP, code[0].Opcode)
	require.Equal(t, LD, code[1].Opcode)
	require.Equal(t, DirectAbs, code[1].Addressing)
	require.Equal(t, "0", code[1].ArgString())
	require.Equal(t, HLT, code[2].Opcode)
	require.Equal(t, NoAddressing, code[2].Addressing)
}

func TestTranslateImmediate(t *testing.T) {
	code, err := Translate(`
	ld #42
	hlt
`)
	require.NoError(t, err)
	require.Equal(t, Load, code[0].Addressing)
	require.Equal(t, "42", code[0].ArgString())
}

func TestTranslatePostIncDec(t *testing.T) {
	code, err := Translate(`
ptr: word 0
	ld [ptr]+
	st [ptr]-
	hlt
`)
	require.NoError(t, err)
	require.Equal(t, PostInc, code[1].Addressing)
	require.Equal(t, PostDec, code[2].Addressing)
	require.Equal(t, "0", code[1].ArgString())
}

func TestTranslateDirectShift(t *testing.T) {
	code, err := Translate(`
start:
	ld #1
	blt [start]
	hlt
`)
	require.NoError(t, err)
	require.Equal(t, DirectShift, code[1].Addressing)
	// start is the label bound to index 0; DIRECT_SHIFT's arg is always
	// the label's absolute address, same as every other addressing mode -
	// any relative arithmetic happens in address_fetch, not here.
	require.Equal(t, "0", code[1].ArgString())
}

func TestTranslateUndefinedLabel(t *testing.T) {
	_, err := Translate(`
	ld missing
	hlt
`)
	require.Error(t, err)
	var terr *TranslationError
	require.ErrorAs(t, err, &terr)
}

func TestTranslateUnknownMnemonic(t *testing.T) {
	_, err := Translate(`
	frobnicate
`)
	require.Error(t, err)
}

func TestTranslateDuplicateLabel(t *testing.T) {
	_, err := Translate(`
x: word 0
x: word 1
`)
	require.Error(t, err)
}

func TestTranslateHexLiteral(t *testing.T) {
	code, err := Translate(`
	ld #0x1F
	hlt
`)
	require.NoError(t, err)
	require.Equal(t, "31", code[0].ArgString())
}

func TestTranslateCommentsAndBlankLines(t *testing.T) {
	code, err := Translate(`
; a comment
	hlt ; trailing comment

`)
	require.NoError(t, err)
	require.Len(t, code, 1)
	require.Equal(t, HLT, code[0].Opcode)
}
