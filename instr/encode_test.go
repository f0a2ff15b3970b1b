package instr

import "testing"

func TestEncodeDecodeRegular_RoundTrip(t *testing.T) {
	f := RegularFields{
		DT:   byte(3),
		OP:   OpAdd,
		LMUX: MuxLeft,
		RMUX: MuxImmediate,
		R1:   5,
		R2:   0,
		RW:   9,
		WE:   true,
		AB:   true,
		DB:   false,
		Phi:  true,
		Imm:  -12345,
	}
	w, err := EncodeRegular(f)
	if err != nil {
		t.Fatalf("EncodeRegular: %v", err)
	}
	if VariantOf(w) != VariantRegular {
		t.Fatalf("VariantOf = %v, want VariantRegular", VariantOf(w))
	}
	got := DecodeRegular(w)
	if got != f {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, f)
	}
}

func TestEncodeDecodePredicate_RoundTrip(t *testing.T) {
	f := PredicateFields{
		DT:   byte(1),
		OP:   PredAddressGenerator,
		LMUX: MuxSelf,
		RMUX: MuxImmediate,
		R1:   2,
		R2:   0,
		RP:   7,
		PMUX: muxAddressBus,
		Imm:  4096,
	}
	w, err := EncodePredicate(f)
	if err != nil {
		t.Fatalf("EncodePredicate: %v", err)
	}
	if VariantOf(w) != VariantPredicate {
		t.Fatalf("VariantOf = %v, want VariantPredicate", VariantOf(w))
	}
	got := DecodePredicate(w)
	if got != f {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, f)
	}
}

func TestEncodeDecodeCondition_RoundTrip(t *testing.T) {
	f := ConditionFields{
		DT:       byte(2),
		OP:       CondCMPLT,
		SP:       true,
		LE:       false,
		LMUX:     MuxUp,
		RMUX:     MuxDown,
		R1:       3,
		R2:       4,
		RW:       1,
		WE:       true,
		BrOffset: LoopExitBranchOffset,
		Imm:      -100,
	}
	w, err := EncodeCondition(f)
	if err != nil {
		t.Fatalf("EncodeCondition: %v", err)
	}
	if VariantOf(w) != VariantCondition {
		t.Fatalf("VariantOf = %v, want VariantCondition", VariantOf(w))
	}
	got := DecodeCondition(w)
	if got != f {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, f)
	}
}

func TestEncodeRegular_ImmediateOverflow(t *testing.T) {
	_, err := EncodeRegular(RegularFields{Imm: 1 << 31})
	if err == nil {
		t.Fatal("expected overflow error for a 33-bit signed value in a 32-bit field")
	}
}

func TestEncodeCondition_NarrowerOpcodeField(t *testing.T) {
	// C-type's OP field is 3 bits wide (one narrower than the shared
	// 4-bit Regular/P-type OP field) since bit 57 is reused for SP.
	w, err := EncodeCondition(ConditionFields{OP: CondCMPGT, SP: true})
	if err != nil {
		t.Fatalf("EncodeCondition: %v", err)
	}
	got := DecodeCondition(w)
	if got.OP != CondCMPGT || !got.SP {
		t.Fatalf("got OP=%v SP=%v, want OP=%v SP=true", got.OP, got.SP, CondCMPGT)
	}
}
