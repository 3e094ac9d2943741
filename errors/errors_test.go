package errors

import (
	"errors"
	"strings"
	"testing"
)

type tagName string

func (t tagName) String() string { return string(t) }

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseRealloc,
				Kind:     KindUnderflow,
				Tag:      "Vector",
				ElemType: "int",
				Detail:   "release of 8 bytes exceeds 0 outstanding",
			},
			contains: []string{"[realloc]", "underflow", "tag Vector", "elem int", "release of 8 bytes"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseInsert,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[insert]", "out_of_bounds"},
		},
		{
			name: "elem only",
			err: &Error{
				Phase:    PhaseGrow,
				Kind:     KindOverflow,
				ElemType: "struct {}",
			},
			contains: []string{"[grow]", "overflow", "(elem struct {})"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseHost,
				Kind:   KindAllocation,
				Detail: "mmap failed",
				Cause:  errors.New("cannot allocate memory"),
			},
			contains: []string{"[host]", "allocation", "mmap failed", "caused by", "cannot allocate memory"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseHost, KindAllocation, cause, "reserve")

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should walk to cause")
	}
}

func TestError_Is(t *testing.T) {
	err := OutOfBounds(PhaseRemove, 7, 3)

	if !errors.Is(err, &Error{Phase: PhaseRemove, Kind: KindOutOfBounds}) {
		t.Error("errors.Is should match same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseInsert, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different phase")
	}
	if errors.Is(err, &Error{Phase: PhaseRemove, Kind: KindOverflow}) {
		t.Error("Is should not match different kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseGrow, KindOverflow).
		Tag(tagName("Vector")).
		ElemType("struct {}").
		Value(42).
		Cause(cause).
		Detail("capacity %s", "overflow").
		Build()

	if err.Phase != PhaseGrow || err.Kind != KindOverflow {
		t.Errorf("Phase/Kind = %v/%v", err.Phase, err.Kind)
	}
	if err.Tag != "Vector" {
		t.Errorf("Tag = %q, want Vector", err.Tag)
	}
	if err.ElemType != "struct {}" {
		t.Errorf("ElemType = %q", err.ElemType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "capacity overflow" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseInsert, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
		if !strings.Contains(err.Detail, "length 5") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("CapacityOverflow", func(t *testing.T) {
		err := CapacityOverflow(PhaseGrow, "int64", "allocation too large")
		if err.Kind != KindOverflow || err.ElemType != "int64" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Underflow", func(t *testing.T) {
		err := Underflow("Texture", 64, 32)
		if err.Phase != PhaseLedger || err.Kind != KindUnderflow {
			t.Errorf("Phase/Kind = %v/%v", err.Phase, err.Kind)
		}
		if err.Tag != "Texture" || err.Value != uint64(64) {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Borrowed", func(t *testing.T) {
		err := Borrowed(PhaseInsert, "string")
		if err.Kind != KindBorrowed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBorrowed)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseHost, 1024, nil)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})
}
