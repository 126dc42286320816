// fitsyndna fits per-sample syndna calibration models from a syndna count
// matrix plus per-sample pool masses and read totals, and prints the
// fitted model block to stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/biocore/syndnaquant"
	"github.com/biocore/syndnaquant/calibrate"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

func main() {
	var countsFile, samplesFile, concsFile, configFile, pool string
	var minSyndnaReads float64

	flag.StringVar(&countsFile, "counts", "", "Path to the tab-delimited syndna count matrix (feature rows, sample columns)")
	flag.StringVar(&samplesFile, "samples", "", "Path to a CSV with columns sample_name, mass_syndna_input_ng, raw_reads_r1r2")
	flag.StringVar(&concsFile, "concs", "", "Path to a CSV with columns syndna_id, syndna_indiv_ng_ul. Overrides -pool.")
	flag.StringVar(&configFile, "config", "", "Optional YAML config with syndna pool definitions and constants")
	flag.StringVar(&pool, "pool", "1", "Syndna pool number to take concentrations from when -concs is not given")
	flag.Float64Var(&minSyndnaReads, "min-reads", 200, "Minimum total aligned reads for a syndna to enter the fit")
	flag.Parse()

	if countsFile == "" {
		log.Fatalln("Please provide -counts")
	}

	if samplesFile == "" {
		log.Fatalln("Please provide -samples")
	}

	reads, err := readCounts(countsFile)
	if err != nil {
		log.Fatalln(err)
	}

	samples, err := readSamples(samplesFile)
	if err != nil {
		log.Fatalln(err)
	}

	concs, err := loadConcs(concsFile, configFile, pool)
	if err != nil {
		log.Fatalln(err)
	}

	logCountSummary(reads)

	models, msgs, err := calibrate.FitLinearModels(concs, samples, reads, minSyndnaReads)
	if err != nil {
		log.Fatalln(err)
	}

	for _, msg := range msgs {
		log.Println(msg)
	}
	log.Println("Fitted models for", len(models), "samples")

	fmt.Print(calibrate.FormatModels(models))
}

func readCounts(path string) (*syndnaquant.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return syndnaquant.ReadCountsTSV(f)
}

func readSamples(path string) ([]calibrate.SampleSyndna, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []calibrate.SampleSyndna
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		return nil, err
	}

	return samples, nil
}

func loadConcs(concsFile, configFile, pool string) ([]calibrate.SyndnaConc, error) {
	if concsFile != "" {
		f, err := os.Open(concsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var concs []calibrate.SyndnaConc
		if err := gocsv.UnmarshalFile(f, &concs); err != nil {
			return nil, err
		}

		return concs, nil
	}

	cfg := syndnaquant.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = syndnaquant.LoadConfig(configFile); err != nil {
			return nil, err
		}
	}

	poolConcs, err := cfg.PoolConcentrations(pool)
	if err != nil {
		return nil, err
	}

	return calibrate.ConcsFromPool(poolConcs), nil
}

func logCountSummary(reads *syndnaquant.Table) {
	sums := reads.SampleSums()

	totals := make([]float64, 0, len(sums))
	for _, v := range sums {
		totals = append(totals, v)
	}
	if len(totals) == 0 {
		return
	}

	min, _ := stats.Min(totals)
	median, _ := stats.Median(totals)
	max, _ := stats.Max(totals)
	log.Printf("Per-sample syndna read totals across %d samples: min %.0f, median %.0f, max %.0f\n",
		len(totals), min, median, max)
}
