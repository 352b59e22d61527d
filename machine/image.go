package machine

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// EncodeImage serialises code to the JSON code-image format: a top-level
// "code" array of {index, opcode, addressing, arg} objects, arg omitted
// entirely when an instruction carries none (spec.md 3, "added" serialised
// shape) - this includes WORD/NOP data cells, which carry their literal in
// Arg despite having Addressing == NoAddressing, so presence is keyed on
// Arg alone, not on Addressing. sjson builds this incrementally rather
// than through a fixed struct, since arg's presence is conditional per
// element.
func EncodeImage(code []Instruction) ([]byte, error) {
	doc := `{"code":[]}`
	var err error

	for i, instr := range code {
		base := fmt.Sprintf("code.%d", i)
		doc, err = sjson.Set(doc, base+".index", instr.Index)
		if err != nil {
			return nil, fmt.Errorf("encoding instruction %d: %w", i, err)
		}
		doc, err = sjson.Set(doc, base+".opcode", instr.Opcode.String())
		if err != nil {
			return nil, fmt.Errorf("encoding instruction %d: %w", i, err)
		}
		doc, err = sjson.Set(doc, base+".addressing", int(instr.Addressing))
		if err != nil {
			return nil, fmt.Errorf("encoding instruction %d: %w", i, err)
		}
		if instr.Arg != nil {
			doc, err = sjson.Set(doc, base+".arg", instr.ArgString())
			if err != nil {
				return nil, fmt.Errorf("encoding instruction %d: %w", i, err)
			}
		}
	}

	return []byte(doc), nil
}

// DecodeImage parses the JSON code-image format produced by EncodeImage.
func DecodeImage(data []byte) ([]Instruction, error) {
	root := gjson.ParseBytes(data)
	codeArr := root.Get("code")
	if !codeArr.Exists() {
		return nil, fmt.Errorf("decoding image: missing \"code\" array")
	}

	var code []Instruction
	var outerErr error
	codeArr.ForEach(func(_, elem gjson.Result) bool {
		opMnemonic := elem.Get("opcode").String()
		op, ok := OpcodeFromMnemonic(opMnemonic)
		if !ok {
			outerErr = fmt.Errorf("decoding image: unknown opcode %q", opMnemonic)
			return false
		}

		instr := Instruction{
			Index:      int(elem.Get("index").Int()),
			Opcode:     op,
			Addressing: Addressing(elem.Get("addressing").Int()),
		}
		if argField := elem.Get("arg"); argField.Exists() {
			instr.Arg = argField.String()
		}

		code = append(code, instr)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}

	return code, nil
}
