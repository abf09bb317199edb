package ppc

// This file implements the fixed bit-slice helpers of a 32-bit big-endian
// PowerPC instruction word. Every Get* except GetU has an Encode* inverse
// that shifts its value into the correct position and range-checks it.
//
//	op[31:26]  rD/rS[25:21]  rA[20:16]  rB[15:11]  rC[10:6]  rE[5:1]  rec[0]
//
// The SPR field is physically split on the wire: the low 5 bits of the SPR
// number sit at [20:16] and the high 5 bits at [15:11] (the same two slots
// as rA/rB). GetSPR/EncodeSPR hide that transposition from callers.

// GetOp extracts the 6-bit primary opcode.
func GetOp(w uint32) uint32 {
	return (w >> 26) & 0x3F
}

// EncodeOp encodes the primary opcode into its field position.
func EncodeOp(value uint32) (uint32, error) {
	if value > 0x3F {
		return 0, &EncodeRangeError{Field: "op", Value: int64(value), Min: 0, Max: 0x3F}
	}
	return value << 26, nil
}

// GetReg1 extracts rD/rS, the first 5-bit register field.
func GetReg1(w uint32) uint32 {
	return (w >> 21) & 0x1F
}

// EncodeReg1 encodes rD/rS into its field position.
func EncodeReg1(value uint32) (uint32, error) {
	if value > 0x1F {
		return 0, &EncodeRangeError{Field: "rD/rS", Value: int64(value), Min: 0, Max: 0x1F}
	}
	return value << 21, nil
}

// GetReg2 extracts rA, the second 5-bit register field.
func GetReg2(w uint32) uint32 {
	return (w >> 16) & 0x1F
}

// EncodeReg2 encodes rA into its field position.
func EncodeReg2(value uint32) (uint32, error) {
	if value > 0x1F {
		return 0, &EncodeRangeError{Field: "rA", Value: int64(value), Min: 0, Max: 0x1F}
	}
	return value << 16, nil
}

// GetReg3 extracts rB, the third 5-bit register field.
func GetReg3(w uint32) uint32 {
	return (w >> 11) & 0x1F
}

// EncodeReg3 encodes rB into its field position.
func EncodeReg3(value uint32) (uint32, error) {
	if value > 0x1F {
		return 0, &EncodeRangeError{Field: "rB", Value: int64(value), Min: 0, Max: 0x1F}
	}
	return value << 11, nil
}

// GetReg4 extracts rC, the fourth 5-bit register field (e.g. rlwinm's MB,
// fmadd's rC).
func GetReg4(w uint32) uint32 {
	return (w >> 6) & 0x1F
}

// EncodeReg4 encodes rC into its field position.
func EncodeReg4(value uint32) (uint32, error) {
	if value > 0x1F {
		return 0, &EncodeRangeError{Field: "rC", Value: int64(value), Min: 0, Max: 0x1F}
	}
	return value << 6, nil
}

// GetReg5 extracts rE, the fifth 5-bit field (rlwinm's ME).
func GetReg5(w uint32) uint32 {
	return (w >> 1) & 0x1F
}

// EncodeReg5 encodes rE into its field position.
func EncodeReg5(value uint32) (uint32, error) {
	if value > 0x1F {
		return 0, &EncodeRangeError{Field: "rE", Value: int64(value), Min: 0, Max: 0x1F}
	}
	return value << 1, nil
}

// GetRec extracts the record bit (bit 0), which asks the hardware to
// update CR0 with the result's sign/zero.
func GetRec(w uint32) bool {
	return w&1 != 0
}

// EncodeRec encodes the record bit.
func EncodeRec(rec bool) uint32 {
	if rec {
		return 1
	}
	return 0
}

// GetO extracts the overflow-enable bit (bit 10) of a primary-0x1F XO-form
// ALU op.
func GetO(w uint32) bool {
	return (w>>10)&1 != 0
}

// EncodeO encodes the overflow-enable bit.
func EncodeO(o bool) uint32 {
	if o {
		return 1 << 10
	}
	return 0
}

// GetU extracts the update bit distinguishing an indexed load/store from
// its update-form sibling (e.g. lwzx vs lwzux): bit 6 of the word, i.e. bit
// 5 of the 10-bit extended subopcode field.
func GetU(w uint32) bool {
	return (w>>6)&1 != 0
}

// GetSubopcode extracts the 10-bit extended subopcode (bits [10:1]) used by
// primary opcodes 0x13(0x4C), 0x1F(0x7C), 0x3B(0xEC), 0x3F(0xFC).
func GetSubopcode(w uint32) uint32 {
	return (w >> 1) & 0x3FF
}

// EncodeSubopcode encodes a 10-bit extended subopcode.
func EncodeSubopcode(value uint32) (uint32, error) {
	if value > 0x3FF {
		return 0, &EncodeRangeError{Field: "subopcode", Value: int64(value), Min: 0, Max: 0x3FF}
	}
	return value << 1, nil
}

// GetShortSubopcode extracts the 5-bit short subopcode (bits [5:1]) used by
// the arithmetic group of primary opcodes 0xEC/0xFC.
func GetShortSubopcode(w uint32) uint32 {
	return (w >> 1) & 0x1F
}

// EncodeShortSubopcode encodes a 5-bit short subopcode.
func EncodeShortSubopcode(value uint32) (uint32, error) {
	if value > 0x1F {
		return 0, &EncodeRangeError{Field: "short_subopcode", Value: int64(value), Min: 0, Max: 0x1F}
	}
	return value << 1, nil
}

// GetImm extracts the unsigned 16-bit immediate (bits [15:0]).
func GetImm(w uint32) uint16 {
	return uint16(w)
}

// EncodeImm encodes an unsigned 16-bit immediate.
func EncodeImm(value uint32) (uint32, error) {
	if value > 0xFFFF {
		return 0, &EncodeRangeError{Field: "imm16", Value: int64(value), Min: 0, Max: 0xFFFF}
	}
	return value & 0xFFFF, nil
}

// GetImmExt extracts the signed 16-bit immediate, sign-extended to 32 bits.
func GetImmExt(w uint32) int32 {
	return int32(int16(uint16(w)))
}

// EncodeImmExt encodes a signed 16-bit immediate.
func EncodeImmExt(value int32) (uint32, error) {
	if value < -0x8000 || value > 0x7FFF {
		return 0, &EncodeRangeError{Field: "imm16", Value: int64(value), Min: -0x8000, Max: 0x7FFF}
	}
	return uint32(uint16(int16(value))), nil
}

// GetBTarget extracts the b-form 24-bit word-count field (bits [25:2]),
// sign-extended and shifted left 2 to a byte displacement.
func GetBTarget(w uint32) int32 {
	li := (w >> 2) & 0xFFFFFF
	if li&0x800000 != 0 {
		li |= 0xFF000000
	}
	return int32(li) << 2
}

// EncodeBTarget encodes a b-form byte displacement.
func EncodeBTarget(disp int32) (uint32, error) {
	if disp%4 != 0 {
		return 0, &EncodeRangeError{Field: "b_target", Value: int64(disp), Min: -0x02000000, Max: 0x01FFFFFC}
	}
	if disp < -0x02000000 || disp > 0x01FFFFFC {
		return 0, &EncodeRangeError{Field: "b_target", Value: int64(disp), Min: -0x02000000, Max: 0x01FFFFFC}
	}
	li := uint32(disp>>2) & 0xFFFFFF
	return li << 2, nil
}

// GetBDisp extracts the bc-form 14-bit word-count field (bits [15:2]),
// sign-extended and shifted left 2 to a byte displacement.
func GetBDisp(w uint32) int32 {
	bd := w & 0xFFFF &^ 0x3
	return int32(int16(uint16(bd)))
}

// EncodeBDisp encodes a bc-form byte displacement.
func EncodeBDisp(disp int32) (uint32, error) {
	if disp%4 != 0 {
		return 0, &EncodeRangeError{Field: "bc_target", Value: int64(disp), Min: -0x8000, Max: 0x7FFF}
	}
	if disp < -0x8000 || disp > 0x7FFF {
		return 0, &EncodeRangeError{Field: "bc_target", Value: int64(disp), Min: -0x8000, Max: 0x7FFF}
	}
	return uint32(uint16(disp)) & 0xFFFC, nil
}

// GetBO extracts the 5-bit BO (branch options) field of a conditional
// branch.
func GetBO(w uint32) uint32 {
	return (w >> 21) & 0x1F
}

// EncodeBO encodes the BO field.
func EncodeBO(value uint32) (uint32, error) {
	if value > 0x1F {
		return 0, &EncodeRangeError{Field: "BO", Value: int64(value), Min: 0, Max: 0x1F}
	}
	return value << 21, nil
}

// GetBI extracts the 5-bit BI (branch input) field of a conditional
// branch: which CR bit to test.
func GetBI(w uint32) uint32 {
	return (w >> 16) & 0x1F
}

// EncodeBI encodes the BI field.
func EncodeBI(value uint32) (uint32, error) {
	if value > 0x1F {
		return 0, &EncodeRangeError{Field: "BI", Value: int64(value), Min: 0, Max: 0x1F}
	}
	return value << 16, nil
}

// GetBAbs extracts the AA (absolute address) bit of a branch instruction.
func GetBAbs(w uint32) bool {
	return (w>>1)&1 != 0
}

// EncodeBAbs encodes the AA bit.
func EncodeBAbs(abs bool) uint32 {
	if abs {
		return 1 << 1
	}
	return 0
}

// GetBLink extracts the LK (link) bit of a branch instruction.
func GetBLink(w uint32) bool {
	return w&1 != 0
}

// EncodeBLink encodes the LK bit.
func EncodeBLink(link bool) uint32 {
	if link {
		return 1
	}
	return 0
}

// GetSPR extracts the 10-bit SPR number, undoing the wire transposition
// (low 5 bits at [20:16], high 5 bits at [15:11]).
func GetSPR(w uint32) uint32 {
	low := (w >> 16) & 0x1F
	high := (w >> 11) & 0x1F
	return (high << 5) | low
}

// EncodeSPR encodes a 10-bit SPR number into its transposed wire position.
func EncodeSPR(spr uint32) (uint32, error) {
	if spr > 0x3FF {
		return 0, &EncodeRangeError{Field: "spr", Value: int64(spr), Min: 0, Max: 0x3FF}
	}
	low := spr & 0x1F
	high := (spr >> 5) & 0x1F
	return (low << 16) | (high << 11), nil
}

// GetTBR extracts the 10-bit TBR number (mftb/mftbu), using the same
// transposed wire layout as SPR.
func GetTBR(w uint32) uint32 {
	return GetSPR(w)
}

// EncodeTBR encodes a 10-bit TBR number.
func EncodeTBR(tbr uint32) (uint32, error) {
	return EncodeSPR(tbr)
}
