package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageRoundTrip(t *testing.T) {
	code := []Instruction{
		{Index: 0, Opcode: LD, Addressing: DirectAbs, Arg: "5"},
		{Index: 1, Opcode: HLT, Addressing: NoAddressing},
	}

	data, err := EncodeImage(code)
	require.NoError(t, err)

	decoded, err := DecodeImage(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	require.Equal(t, LD, decoded[0].Opcode)
	require.Equal(t, DirectAbs, decoded[0].Addressing)
	require.Equal(t, "5", decoded[0].ArgString())

	require.Equal(t, HLT, decoded[1].Opcode)
	require.Equal(t, NoAddressing, decoded[1].Addressing)
	require.Nil(t, decoded[1].Arg)
}

func TestImageRoundTripPreservesWordLiteral(t *testing.T) {
	// A translated WORD reservation is a NOP instruction carrying its
	// literal in Arg despite Addressing == NoAddressing; EncodeImage must
	// not drop that arg just because there's no addressing mode.
	code, err := Translate(`
answer: word 0x2A
	ld answer
	hlt
`)
	require.NoError(t, err)

	data, err := EncodeImage(code)
	require.NoError(t, err)

	decoded, err := DecodeImage(data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	require.Equal(t, NOP, decoded[0].Opcode)
	require.Equal(t, NoAddressing, decoded[0].Addressing)
	require.Equal(t, "42", decoded[0].ArgString())
}

func TestImageOmitsArgForNoAddressing(t *testing.T) {
	code := []Instruction{{Index: 0, Opcode: HLT, Addressing: NoAddressing}}
	data, err := EncodeImage(code)
	require.NoError(t, err)
	require.NotContains(t, string(data), "\"arg\"")
}

func TestImageDecodeRejectsUnknownOpcode(t *testing.T) {
	_, err := DecodeImage([]byte(`{"code":[{"index":0,"opcode":"bogus","addressing":5}]}`))
	require.Error(t, err)
}

func TestImageDecodeRequiresCodeArray(t *testing.T) {
	_, err := DecodeImage([]byte(`{}`))
	require.Error(t, err)
}
