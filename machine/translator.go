package machine

import (
	"strconv"
	"strings"
)

// rawLine is one pass-1 classified source line: either a WORD reservation
// (word != nil) or a mnemonic instruction with an unresolved operand token.
type rawLine struct {
	sourceLine int
	mnemonic   string
	operand    string // raw token, sigils intact; empty if no operand
	word       *int32 // non-nil for a WORD directive
}

// Translate runs the two-pass assembler over source: pass one strips
// comments, records label addresses and classifies every line; pass two
// resolves operand addressing modes and label references into the final
// Instruction list (spec.md 4.7).
func Translate(source string) ([]Instruction, error) {
	lines, labels, err := firstPass(source)
	if err != nil {
		return nil, err
	}
	return secondPass(lines, labels)
}

func firstPass(source string) ([]rawLine, map[string]int, error) {
	labels := make(map[string]int)
	var raw []rawLine

	for lineNo, text := range strings.Split(source, "\n") {
		lineNo++ // 1-based for error messages

		if idx := strings.IndexByte(text, ';'); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if idx := strings.IndexByte(text, ':'); idx >= 0 {
			label := strings.TrimSpace(text[:idx])
			if label == "" {
				return nil, &TranslationError{Line: lineNo, Message: "empty label"}
			}
			if _, dup := labels[label]; dup {
				return nil, &TranslationError{Line: lineNo, Token: label, Message: "duplicate label"}
			}
			labels[label] = len(raw)

			rest := strings.TrimSpace(text[idx+1:])
			if rest == "" {
				continue
			}
			text = rest
		}

		fields := strings.Fields(text)
		mnemonic := strings.ToLower(fields[0])

		if mnemonic == "word" {
			if len(fields) != 2 {
				return nil, &TranslationError{Line: lineNo, Message: "word requires exactly one literal"}
			}
			v, err := parseNumber(fields[1])
			if err != nil {
				return nil, &TranslationError{Line: lineNo, Token: fields[1], Message: "malformed word literal"}
			}
			raw = append(raw, rawLine{sourceLine: lineNo, mnemonic: "word", word: &v})
			continue
		}

		if _, ok := OpcodeFromMnemonic(mnemonic); !ok {
			return nil, &TranslationError{Line: lineNo, Token: mnemonic, Message: "unknown mnemonic"}
		}

		operand := ""
		if len(fields) > 1 {
			operand = fields[1]
		}
		raw = append(raw, rawLine{sourceLine: lineNo, mnemonic: mnemonic, operand: operand})
	}

	return raw, labels, nil
}

func secondPass(lines []rawLine, labels map[string]int) ([]Instruction, error) {
	code := make([]Instruction, len(lines))

	for i, rl := range lines {
		if rl.word != nil {
			code[i] = Instruction{Index: i, Opcode: NOP, Arg: *rl.word, Addressing: NoAddressing}
			continue
		}

		op, _ := OpcodeFromMnemonic(rl.mnemonic)
		instr := Instruction{Index: i, Opcode: op, Addressing: NoAddressing}

		if rl.operand != "" {
			addressing, arg, err := resolveOperand(rl.operand, labels)
			if err != nil {
				err.(*TranslationError).Line = rl.sourceLine
				return nil, err
			}
			instr.Addressing = addressing
			instr.Arg = arg
		}

		code[i] = instr
	}

	return code, nil
}

// resolveOperand classifies operand's lexical form into an addressing mode
// plus resolved decimal-string arg, per spec.md 4.7 pass 2 exactly:
//
//	[name]+  POST_INC
//	[name]-  POST_DEC
//	[name]   DIRECT_SHIFT
//	#name    LOAD
//	name     DIRECT_ABS (default, no sigils)
//
// In every case the sigils are stripped to leave a bare token, which is
// then resolved uniformly: a literal number (decimal or 0x…) is replaced
// with its decimal string, otherwise it's looked up in the label table and replaced with its
// decimal-string address - always the label's absolute address, never a
// displacement computed here; any relative-addressing arithmetic happens
// in the datapath during address_fetch, not in the translator.
func resolveOperand(operand string, labels map[string]int) (Addressing, string, error) {
	var addressing Addressing
	token := operand

	switch {
	case strings.HasPrefix(operand, "[") && strings.HasSuffix(operand, "]+"):
		addressing = PostInc
		token = strings.TrimSuffix(strings.TrimPrefix(operand, "["), "]+")

	case strings.HasPrefix(operand, "[") && strings.HasSuffix(operand, "]-"):
		addressing = PostDec
		token = strings.TrimSuffix(strings.TrimPrefix(operand, "["), "]-")

	case strings.HasPrefix(operand, "[") && strings.HasSuffix(operand, "]"):
		addressing = DirectShift
		token = strings.TrimSuffix(strings.TrimPrefix(operand, "["), "]")

	case strings.HasPrefix(operand, "#"):
		addressing = Load
		token = strings.TrimPrefix(operand, "#")

	default:
		addressing = DirectAbs
	}

	arg, err := resolveToken(token)
	if err != nil {
		if addr, ok := labels[token]; ok {
			return addressing, strconv.Itoa(addr), nil
		}
		return 0, "", &TranslationError{Token: token, Message: "undefined label"}
	}
	return addressing, arg, nil
}

// resolveToken parses token as a literal number. Callers fall back to a
// label-table lookup when this returns an error.
func resolveToken(token string) (string, error) {
	v, err := parseNumber(token)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(int64(v), 10), nil
}

// parseNumber accepts decimal or 0x-prefixed hex literals, with an optional
// leading sign.
func parseNumber(tok string) (int32, error) {
	neg := false
	if strings.HasPrefix(tok, "-") {
		neg = true
		tok = tok[1:]
	}

	base := 10
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		base = 16
		tok = tok[2:]
	}

	n, err := strconv.ParseInt(tok, base, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		n = -n
	}
	return int32(n), nil
}
