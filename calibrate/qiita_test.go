package calibrate

import (
	"testing"

	"github.com/biocore/syndnaquant"
)

func prepInfoFixture(t *testing.T) *syndnaquant.SampleInfo {
	t.Helper()

	prep, err := syndnaquant.NewSampleInfo(SampleIDKey, requiredPrepColumns)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range []map[string]string{
		{SampleIDKey: "A", SyndnaPoolNumKey: "1", SyndnaPoolMassNgKey: "0.25", SyndnaTotalReadsKey: "3216923"},
		{SampleIDKey: "B", SyndnaPoolNumKey: "1", SyndnaPoolMassNgKey: "0.2", SyndnaTotalReadsKey: "1723417"},
	} {
		if err := prep.Append(row); err != nil {
			t.Fatal(err)
		}
	}

	return prep
}

func TestFitForQiita(t *testing.T) {
	results, err := FitForQiita(prepInfoFixture(t), fixtureReads(t), 50, nil)
	if err != nil {
		t.Fatal(err)
	}

	wantModels := "A:\n" +
		"  intercept: -6.724238188489\n" +
		"  intercept_stderr: 0.236197627825\n" +
		"  pvalue: 1.42844e-07\n" +
		"  rvalue: 0.986503097515\n" +
		"  slope: 1.244876523791\n" +
		"  stderr: 0.073054085503\n" +
		"B:\n" +
		"  intercept: -7.155318973708\n" +
		"  intercept_stderr: 0.256395675584\n" +
		"  pvalue: 1.50538e-07\n" +
		"  rvalue: 0.986324179735\n" +
		"  slope: 1.246759136044\n" +
		"  stderr: 0.073657952553\n"
	if got := results[LinRegressResultKey]; got != wantModels {
		t.Errorf("%s =\n%s\nwant\n%s", LinRegressResultKey, got, wantModels)
	}
	if got := results[FitLogKey]; got != "" {
		t.Errorf("%s = %q, want empty", FitLogKey, got)
	}
}

func TestFitForQiitaMinCountDrop(t *testing.T) {
	results, err := FitForQiita(prepInfoFixture(t), fixtureReads(t), 200, nil)
	if err != nil {
		t.Fatal(err)
	}

	wantModels := "A:\n" +
		"  intercept: -6.767160120684\n" +
		"  intercept_stderr: 0.301479875957\n" +
		"  pvalue: 2.170514e-06\n" +
		"  rvalue: 0.982777689569\n" +
		"  slope: 1.256194910944\n" +
		"  stderr: 0.089276147107\n" +
		"B:\n" +
		"  intercept: -7.196128673001\n" +
		"  intercept_stderr: 0.326579863246\n" +
		"  pvalue: 2.289073e-06\n" +
		"  rvalue: 0.982512701026\n" +
		"  slope: 1.25681918648\n" +
		"  stderr: 0.090023307568\n"
	if got := results[LinRegressResultKey]; got != wantModels {
		t.Errorf("%s =\n%s\nwant\n%s", LinRegressResultKey, got, wantModels)
	}

	wantLog := "The following syndnas were dropped because they had fewer than 200 total reads aligned: [p166]"
	if got := results[FitLogKey]; got != wantLog {
		t.Errorf("%s = %q, want %q", FitLogKey, got, wantLog)
	}
}

func TestFitForQiitaMultiplePools(t *testing.T) {
	prep := prepInfoFixture(t)
	prep.Append(map[string]string{
		SampleIDKey: "C", SyndnaPoolNumKey: "2",
		SyndnaPoolMassNgKey: "0.3", SyndnaTotalReadsKey: "100",
	})

	_, err := FitForQiita(prep, fixtureReads(t), 50, nil)
	if err == nil {
		t.Fatal("expected error for mixed pool numbers")
	}
	want := "Multiple syndna_pool_numbers found in prep info: [1 2]"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestFitForQiitaMissingColumn(t *testing.T) {
	prep, err := syndnaquant.NewSampleInfo(SampleIDKey, []string{
		SampleIDKey, SyndnaPoolMassNgKey, SyndnaTotalReadsKey,
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = FitForQiita(prep, fixtureReads(t), 50, nil)
	if err == nil {
		t.Fatal("expected error for missing prep column")
	}
	want := "prep info is missing required column(s): [syndna_pool_number]"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
