package syndnaquant

import (
	"math"
	"testing"
)

func TestCopiesPerGramGolden(t *testing.T) {
	// A 1941-base ssRNA element (the span 5432..7372, inclusive).
	got, err := CopiesPerGram(1941, DefaultRNABaseGPerMole)
	if err != nil {
		t.Fatal(err)
	}

	want := 9.125071976240265e+17
	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("CopiesPerGram(1941, RNA) = %v, want %v", got, want)
	}
}

func TestCopiesPerGramMonotonicInLength(t *testing.T) {
	prev := math.Inf(1)
	for length := 1.0; length <= 1e6; length *= 10 {
		got, err := CopiesPerGram(length, DefaultRNABaseGPerMole)
		if err != nil {
			t.Fatal(err)
		}
		if got <= 0 {
			t.Errorf("CopiesPerGram(%v) = %v, want strictly positive", length, got)
		}
		if got >= prev {
			t.Errorf("CopiesPerGram(%v) = %v, want < %v (decreasing in length)", length, got, prev)
		}
		prev = got
	}
}

func TestCopiesPerGramDomainErrors(t *testing.T) {
	if _, err := CopiesPerGram(0, DefaultRNABaseGPerMole); err == nil {
		t.Error("expected error for zero length")
	}
	if _, err := CopiesPerGram(-5, DefaultRNABaseGPerMole); err == nil {
		t.Error("expected error for negative length")
	}
	if _, err := CopiesPerGram(100, 0); err == nil {
		t.Error("expected error for zero molar mass")
	}
}

func TestMassNgInAliquot(t *testing.T) {
	// 10 ng/µL in 70 µL elutes 700 ng.
	if got := MassNgInAliquot(10, 70); got != 700 {
		t.Errorf("MassNgInAliquot(10, 70) = %v, want 700", got)
	}

	if got := MassNgInAliquot(10, 70) / NanogramsPerGram; got != 7e-7 {
		t.Errorf("grams in aliquot = %v, want 7e-07", got)
	}
}
