// File: encode.go
// Role: bit-level pack/unpack for the three instruction-word variants
// (spec §4.7, §6).
package instr

import "fmt"

func packUnsigned(w Word, f field, v uint64) (Word, error) {
	if v > f.mask() {
		return w, fmt.Errorf("instr: field at bit %d width %d value %d: %w", f.shift, f.width, v, ErrBitWidthOverflow)
	}
	return w &^ (Word(f.mask()) << f.shift) | Word(v<<f.shift), nil
}

func unpackUnsigned(w Word, f field) uint64 {
	return uint64(w>>f.shift) & f.mask()
}

// packSigned packs a two's-complement value into width bits, rejecting
// values that do not fit in the signed range [-2^(width-1), 2^(width-1)-1].
func packSigned(w Word, f field, v int64) (Word, error) {
	lo := -(int64(1) << (f.width - 1))
	hi := int64(1)<<(f.width-1) - 1
	if v < lo || v > hi {
		return w, fmt.Errorf("instr: signed field at bit %d width %d value %d: %w", f.shift, f.width, v, ErrBitWidthOverflow)
	}
	return packUnsigned(w, f, uint64(v)&f.mask())
}

// unpackSigned sign-extends a width-bit field back to int64.
func unpackSigned(w Word, f field) int64 {
	raw := unpackUnsigned(w, f)
	signBit := uint64(1) << (f.width - 1)
	if raw&signBit != 0 {
		return int64(raw) - int64(signBit<<1)
	}
	return int64(raw)
}

func packBool(w Word, f field, v bool) Word {
	if v {
		return w | (Word(1) << f.shift)
	}
	return w &^ (Word(1) << f.shift)
}

func unpackBool(w Word, f field) bool {
	return unpackUnsigned(w, f) != 0
}

// RegularFields is every field a regular-variant word carries.
type RegularFields struct {
	DT       byte
	OP       OpCode
	LMUX     Mux
	RMUX     Mux
	R1, R2   byte
	RW       byte
	WE       bool
	AB, DB   bool
	Phi      bool
	Imm      int32
}

// EncodeRegular packs f into a regular-variant (P=0, C=0) Word.
func EncodeRegular(f RegularFields) (Word, error) {
	var w Word
	var err error
	if w, err = packUnsigned(w, fieldDT, uint64(f.DT)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldOP, uint64(f.OP)); err != nil {
		return 0, err
	}
	w = packBool(w, fieldP, false)
	w = packBool(w, fieldC, false)
	if w, err = packUnsigned(w, fieldLMUX, uint64(f.LMUX)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldRMUX, uint64(f.RMUX)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldR1, uint64(f.R1)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldR2, uint64(f.R2)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldRegRW, uint64(f.RW)); err != nil {
		return 0, err
	}
	w = packBool(w, fieldRegWE, f.WE)
	w = packBool(w, fieldRegAB, f.AB)
	w = packBool(w, fieldRegDB, f.DB)
	w = packBool(w, fieldRegPhi, f.Phi)
	if w, err = packSigned(w, fieldRegIMM, int64(f.Imm)); err != nil {
		return 0, err
	}
	return w, nil
}

// DecodeRegular unpacks a regular-variant Word.
func DecodeRegular(w Word) RegularFields {
	return RegularFields{
		DT:   byte(unpackUnsigned(w, fieldDT)),
		OP:   OpCode(unpackUnsigned(w, fieldOP)),
		LMUX: Mux(unpackUnsigned(w, fieldLMUX)),
		RMUX: Mux(unpackUnsigned(w, fieldRMUX)),
		R1:   byte(unpackUnsigned(w, fieldR1)),
		R2:   byte(unpackUnsigned(w, fieldR2)),
		RW:   byte(unpackUnsigned(w, fieldRegRW)),
		WE:   unpackBool(w, fieldRegWE),
		AB:   unpackBool(w, fieldRegAB),
		DB:   unpackBool(w, fieldRegDB),
		Phi:  unpackBool(w, fieldRegPhi),
		Imm:  int32(unpackSigned(w, fieldRegIMM)),
	}
}

// PredicateFields is every field a P-type word carries.
type PredicateFields struct {
	DT         byte
	OP         PredOpCode
	LMUX, RMUX Mux
	R1, R2     byte
	RP         byte
	PMUX       Mux
	Imm        int32
}

// EncodePredicate packs f into a P-type (P=1, C=0) Word.
func EncodePredicate(f PredicateFields) (Word, error) {
	var w Word
	var err error
	if w, err = packUnsigned(w, fieldDT, uint64(f.DT)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldOP, uint64(f.OP)); err != nil {
		return 0, err
	}
	w = packBool(w, fieldP, true)
	w = packBool(w, fieldC, false)
	if w, err = packUnsigned(w, fieldLMUX, uint64(f.LMUX)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldRMUX, uint64(f.RMUX)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldR1, uint64(f.R1)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldR2, uint64(f.R2)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldPredRP, uint64(f.RP)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldPredPMUX, uint64(f.PMUX)); err != nil {
		return 0, err
	}
	if w, err = packSigned(w, fieldPredIMM, int64(f.Imm)); err != nil {
		return 0, err
	}
	return w, nil
}

// DecodePredicate unpacks a P-type Word.
func DecodePredicate(w Word) PredicateFields {
	return PredicateFields{
		DT:   byte(unpackUnsigned(w, fieldDT)),
		OP:   PredOpCode(unpackUnsigned(w, fieldOP)),
		LMUX: Mux(unpackUnsigned(w, fieldLMUX)),
		RMUX: Mux(unpackUnsigned(w, fieldRMUX)),
		R1:   byte(unpackUnsigned(w, fieldR1)),
		R2:   byte(unpackUnsigned(w, fieldR2)),
		RP:   byte(unpackUnsigned(w, fieldPredRP)),
		PMUX: Mux(unpackUnsigned(w, fieldPredPMUX)),
		Imm:  int32(unpackSigned(w, fieldPredIMM)),
	}
}

// ConditionFields is every field a C-type word carries.
type ConditionFields struct {
	DT         byte
	OP         CondOpCode
	SP, LE     bool
	LMUX, RMUX Mux
	R1, R2     byte
	RW         byte
	WE         bool
	BrOffset   uint16
	Imm        int32
}

// EncodeCondition packs f into a C-type (C=1) Word.
func EncodeCondition(f ConditionFields) (Word, error) {
	var w Word
	var err error
	if w, err = packUnsigned(w, fieldDT, uint64(f.DT)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldCondOP, uint64(f.OP)); err != nil {
		return 0, err
	}
	w = packBool(w, fieldCondSP, f.SP)
	w = packBool(w, fieldCondLE, f.LE)
	w = packBool(w, fieldC, true)
	if w, err = packUnsigned(w, fieldLMUX, uint64(f.LMUX)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldRMUX, uint64(f.RMUX)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldR1, uint64(f.R1)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldR2, uint64(f.R2)); err != nil {
		return 0, err
	}
	if w, err = packUnsigned(w, fieldCondRW, uint64(f.RW)); err != nil {
		return 0, err
	}
	w = packBool(w, fieldCondWE, f.WE)
	if w, err = packUnsigned(w, fieldCondBROFFSET, uint64(f.BrOffset)); err != nil {
		return 0, err
	}
	if w, err = packSigned(w, fieldCondIMM, int64(f.Imm)); err != nil {
		return 0, err
	}
	return w, nil
}

// DecodeCondition unpacks a C-type Word.
func DecodeCondition(w Word) ConditionFields {
	return ConditionFields{
		DT:       byte(unpackUnsigned(w, fieldDT)),
		OP:       CondOpCode(unpackUnsigned(w, fieldCondOP)),
		SP:       unpackBool(w, fieldCondSP),
		LE:       unpackBool(w, fieldCondLE),
		LMUX:     Mux(unpackUnsigned(w, fieldLMUX)),
		RMUX:     Mux(unpackUnsigned(w, fieldRMUX)),
		R1:       byte(unpackUnsigned(w, fieldR1)),
		R2:       byte(unpackUnsigned(w, fieldR2)),
		RW:       byte(unpackUnsigned(w, fieldCondRW)),
		WE:       unpackBool(w, fieldCondWE),
		BrOffset: uint16(unpackUnsigned(w, fieldCondBROFFSET)),
		Imm:      int32(unpackSigned(w, fieldCondIMM)),
	}
}

// VariantOf inspects a Word's P/C discriminator bits to report which
// variant it was encoded as (spec §4.7).
func VariantOf(w Word) Variant {
	if unpackBool(w, fieldC) {
		return VariantCondition
	}
	if unpackBool(w, fieldP) {
		return VariantPredicate
	}
	return VariantRegular
}
