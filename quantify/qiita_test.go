package quantify

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/biocore/syndnaquant"
)

func writeCoordsFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "coords.txt")
	content := ">G000005825\n" +
		"1\t816\t2168\n" +
		"6\t5432\t7372\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestCopiesPerGramForQiita(t *testing.T) {
	sampleInfo, err := syndnaquant.NewSampleInfo(SampleIDKey, requiredSampleInfoColumns)
	if err != nil {
		t.Fatal(err)
	}
	sampleInfo.Append(map[string]string{SampleIDKey: "A", AliquotMassGKey: "0.01"})

	prepInfo, err := syndnaquant.NewSampleInfo(SampleIDKey, requiredPrepInfoColumns)
	if err != nil {
		t.Fatal(err)
	}
	prepInfo.Append(map[string]string{
		SampleIDKey:             "A",
		RNAConcNgULKey:          "100",
		EluteVolULKey:           "10",
		TotalBiologicalReadsKey: "1000",
	})

	reads, err := syndnaquant.NewTable(
		[]string{"G000005825_1", "G000005825_6"}, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	reads.Set("G000005825_6", "A", 500)

	out, log, err := CopiesPerGramForQiita(sampleInfo, prepInfo, reads, writeCoordsFixture(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if log != "" {
		t.Errorf("log = %q, want empty", log)
	}

	// 500 reads of 1000, 1000 ng in elute, 1941-base ORF at 340 g/mole per
	// base, 0.01 g aliquot:
	// 0.5 * 1e-6 g * 9.125071976240265e17 copies/g / 0.01 g
	want := 4.5625359881201325e13
	got := out.At("G000005825_6", "A")
	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("At(G000005825_6, A) = %v, want %v", got, want)
	}
	if got := out.At("G000005825_1", "A"); got != 0 {
		t.Errorf("At(G000005825_1, A) = %v, want 0", got)
	}
}

func TestCopiesPerGramForQiitaMissingColumns(t *testing.T) {
	good, err := syndnaquant.NewSampleInfo(SampleIDKey, requiredSampleInfoColumns)
	if err != nil {
		t.Fatal(err)
	}
	bare, err := syndnaquant.NewSampleInfo(SampleIDKey, []string{SampleIDKey})
	if err != nil {
		t.Fatal(err)
	}
	reads, err := syndnaquant.NewTable([]string{"f1"}, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = CopiesPerGramForQiita(bare, bare, reads, "unused", nil)
	if err == nil {
		t.Fatal("expected error for missing sample info column")
	}
	want := "sample info is missing required column(s): [calc_mass_sample_aliquot_input_g]"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}

	_, _, err = CopiesPerGramForQiita(good, bare, reads, "unused", nil)
	if err == nil {
		t.Fatal("expected error for missing prep info columns")
	}
	want = "prep info is missing required column(s): " +
		"[total_biological_reads_r1r2 total_rna_concentration_ng_ul vol_extracted_elution_ul]"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestCopiesPerGramForQiitaJoinIsInner(t *testing.T) {
	sampleInfo, err := syndnaquant.NewSampleInfo(SampleIDKey, requiredSampleInfoColumns)
	if err != nil {
		t.Fatal(err)
	}
	sampleInfo.Append(map[string]string{SampleIDKey: "A", AliquotMassGKey: "0.01"})
	// described in the sample info but never run in this prep
	sampleInfo.Append(map[string]string{SampleIDKey: "X", AliquotMassGKey: "0.02"})

	prepInfo, err := syndnaquant.NewSampleInfo(SampleIDKey, requiredPrepInfoColumns)
	if err != nil {
		t.Fatal(err)
	}
	prepInfo.Append(map[string]string{
		SampleIDKey:             "A",
		RNAConcNgULKey:          "100",
		EluteVolULKey:           "10",
		TotalBiologicalReadsKey: "1000",
	})

	reads, err := syndnaquant.NewTable([]string{"G000005825_6"}, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	reads.Set("G000005825_6", "A", 500)

	out, log, err := CopiesPerGramForQiita(sampleInfo, prepInfo, reads, writeCoordsFixture(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := out.SampleIDs(); len(got) != 1 || got[0] != "A" {
		t.Errorf("projected samples = %v, want [A]", got)
	}
	if log != "" {
		t.Errorf("log = %q, want empty", log)
	}
}
