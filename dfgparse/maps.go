package dfgparse

import (
	"fmt"
	"strings"

	"github.com/cgra-tc/cgrac/dfg"
)

var opKindByName = map[string]dfg.OpKind{
	"ADD": dfg.OpAdd, "SUB": dfg.OpSub, "MUL": dfg.OpMul, "DIV": dfg.OpDiv,
	"REM": dfg.OpRem, "AND": dfg.OpAnd, "OR": dfg.OpOr, "XOR": dfg.OpXor,
	"ASL": dfg.OpAsl, "ASR": dfg.OpAsr, "LSHR": dfg.OpLshr,
	"CMPEQ": dfg.OpCmpEq, "CMPNEQ": dfg.OpCmpNeq, "CMPGT": dfg.OpCmpGt, "CMPLT": dfg.OpCmpLt,
	"LOAD_ADDR": dfg.OpLoadAddr, "LOAD_DATA": dfg.OpLoadData,
	"STORE_ADDR": dfg.OpStoreAddr, "STORE_DATA": dfg.OpStoreData,
	"PHI": dfg.OpPhi, "CGRA_SELECT": dfg.OpPhi, "SEL": dfg.OpPhi,
	"SEXT": dfg.OpSignExtend, "CONST": dfg.OpConst, "ROUTE": dfg.OpRoute,
	"LOOP_CONTROL": dfg.OpLoopControl,
}

var dataTypeByName = map[string]dfg.DataType{
	"CHARACTER": dfg.TypeCharacter, "CHAR": dfg.TypeCharacter,
	"INT16": dfg.TypeInt16, "INT32": dfg.TypeInt32,
	"FLOAT16": dfg.TypeFloat16, "FLOAT32": dfg.TypeFloat32, "FLOAT64": dfg.TypeFloat64,
}

func parseOpKind(tok string) (dfg.OpKind, error) {
	k, ok := opKindByName[strings.ToUpper(tok)]
	if !ok {
		return dfg.OpUnknown, fmt.Errorf("%q: %w", tok, ErrUnknownOpKind)
	}
	return k, nil
}

func parseDataType(tok string) (dfg.DataType, error) {
	t, ok := dataTypeByName[strings.ToUpper(tok)]
	if !ok {
		return dfg.TypeUnknown, fmt.Errorf("%q: %w", tok, ErrUnknownDataType)
	}
	return t, nil
}

func parsePathTag(tok string) dfg.PathTag {
	switch strings.ToUpper(tok) {
	case "TRUE", "T":
		return dfg.PathTrue
	case "FALSE", "F":
		return dfg.PathFalse
	default:
		return dfg.PathNone
	}
}

// edgeTag classifies edge.sch's 5-letter tag vocabulary (spec §4.2, §6).
type edgeTag int

const (
	tagTRU edgeTag = iota
	tagPRE
	tagLRE
	tagSRE
	tagMEM
	tagLCE
	tagLIV
)

var edgeTagByName = map[string]edgeTag{
	"TRU": tagTRU, "PRE": tagPRE, "LRE": tagLRE, "SRE": tagSRE,
	"MEM": tagMEM, "LCE": tagLCE, "LIV": tagLIV,
}

func parseEdgeTag(tok string) (edgeTag, error) {
	tag, ok := edgeTagByName[strings.ToUpper(tok)]
	if !ok {
		return 0, fmt.Errorf("%q: %w", tok, ErrUnknownEdgeTag)
	}
	return tag, nil
}
