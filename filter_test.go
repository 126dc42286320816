package syndnaquant

import (
	"strings"
	"testing"
)

func filterFixture(t *testing.T) (*SampleInfo, *Table) {
	t.Helper()

	si, err := NewSampleInfo("sample_name", []string{"sample_name", "mass_g", "reads"})
	if err != nil {
		t.Fatal(err)
	}
	si.Append(map[string]string{"sample_name": "A", "mass_g": "0.25", "reads": "100"})
	si.Append(map[string]string{"sample_name": "B", "mass_g": "", "reads": "200"})
	si.Append(map[string]string{"sample_name": "C", "mass_g": "0.3", "reads": "300"})

	tbl := mustTable(t, []string{"f1"}, []string{"A", "B", "C"})
	tbl.Set("f1", "A", 1)
	tbl.Set("f1", "B", 2)
	tbl.Set("f1", "C", 3)

	return si, tbl
}

func TestFilterDropsMissingValue(t *testing.T) {
	si, tbl := filterFixture(t)

	out, msgs, err := FilterBySampleInfo(si, tbl, []string{"mass_g", "reads"})
	if err != nil {
		t.Fatal(err)
	}

	if got := out.SampleIDs(); len(got) != 2 || got[0] != "A" || got[1] != "C" {
		t.Errorf("kept samples = %v, want [A C]", got)
	}

	if len(msgs) != 1 {
		t.Fatalf("msgs = %v, want exactly one", msgs)
	}
	if !strings.Contains(msgs[0], "'mass_g'") || !strings.Contains(msgs[0], "[B]") {
		t.Errorf("message does not name the dropped sample and column: %q", msgs[0])
	}
}

func TestFilterDropsInvalidValue(t *testing.T) {
	si, tbl := filterFixture(t)
	si.rows["C"]["reads"] = "many"

	out, msgs, err := FilterBySampleInfo(si, tbl, []string{"mass_g", "reads"})
	if err != nil {
		t.Fatal(err)
	}

	if got := out.SampleIDs(); len(got) != 1 || got[0] != "A" {
		t.Errorf("kept samples = %v, want [A]", got)
	}

	// missing and non-numeric are reported as distinct reasons
	if len(msgs) != 2 {
		t.Fatalf("msgs = %v, want two", msgs)
	}
	if !strings.Contains(msgs[0], "missing") || !strings.Contains(msgs[0], "[B]") {
		t.Errorf("missing-value message wrong: %q", msgs[0])
	}
	if !strings.Contains(msgs[1], "not numeric") || !strings.Contains(msgs[1], "[C]") {
		t.Errorf("invalid-value message wrong: %q", msgs[1])
	}
}

func TestFilterDropsSampleWithoutInfo(t *testing.T) {
	si, _ := filterFixture(t)
	tbl2 := mustTable(t, []string{"f1"}, []string{"A", "D"})
	tbl2.Set("f1", "A", 1)
	tbl2.Set("f1", "D", 4)

	out, msgs, err := FilterBySampleInfo(si, tbl2, []string{"mass_g"})
	if err != nil {
		t.Fatal(err)
	}

	if got := out.SampleIDs(); len(got) != 1 || got[0] != "A" {
		t.Errorf("kept samples = %v, want [A]", got)
	}
	if len(msgs) != 1 || !strings.Contains(msgs[0], "no sample info") || !strings.Contains(msgs[0], "[D]") {
		t.Errorf("msgs = %v", msgs)
	}
}

func TestFilterMissingColumnIsError(t *testing.T) {
	si, tbl := filterFixture(t)

	_, _, err := FilterBySampleInfo(si, tbl, []string{"vol_ul"})
	if err == nil {
		t.Fatal("expected error for absent metadata column")
	}
	want := "sample info is missing required column(s): [vol_ul]"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestFilterNothingToDrop(t *testing.T) {
	si, tbl := filterFixture(t)
	si.rows["B"]["mass_g"] = "0.2"

	out, msgs, err := FilterBySampleInfo(si, tbl, []string{"mass_g", "reads"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.SampleIDs()) != 3 {
		t.Errorf("kept samples = %v, want all three", out.SampleIDs())
	}
	if len(msgs) != 0 {
		t.Errorf("msgs = %v, want none", msgs)
	}
}
