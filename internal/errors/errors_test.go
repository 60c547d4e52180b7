package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(TypeInput, "specification is required")
	if got := plain.Error(); got != "[INPUT_ERROR] specification is required" {
		t.Errorf("unexpected message %q", got)
	}

	wrapped := Wrap(TypeParsing, "decode rate table", fmt.Errorf("unexpected EOF"))
	if got := wrapped.Error(); got != "[PARSING_ERROR] decode rate table: unexpected EOF" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestIsTypeWalksChain(t *testing.T) {
	inner := NotFound("rate table", "abc")
	outer := fmt.Errorf("select: %w", inner)

	if !IsType(outer, TypeNotFound) {
		t.Error("expected NOT_FOUND in chain")
	}
	if IsType(outer, TypeStore) {
		t.Error("did not expect STORE_ERROR")
	}
	if TypeOf(outer) != TypeNotFound {
		t.Errorf("TypeOf = %s", TypeOf(outer))
	}
	if TypeOf(stderrors.New("boom")) != TypeInternal {
		t.Error("foreign errors should report INTERNAL_ERROR")
	}
}

func TestWithContext(t *testing.T) {
	err := RateTable("duplicate catalog key %q", "pump-a").WithContext("catalog", "pumps")
	if err.Context["catalog"] != "pumps" {
		t.Errorf("context not recorded: %v", err.Context)
	}
	if err.Type != TypeRateTable {
		t.Errorf("type = %s", err.Type)
	}
}
