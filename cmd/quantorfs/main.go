// quantorfs projects an ORF read-count matrix into copies of each ORF's
// ssRNA per gram of original sample material, using per-sample physical
// measurements and an ORF coordinate annotation file.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"

	"github.com/biocore/syndnaquant"
	"github.com/biocore/syndnaquant/quantify"
)

func main() {
	var countsFile, samplesFile, coordsFile, configFile, outFile string

	flag.StringVar(&countsFile, "counts", "", "Path to the tab-delimited ORF count matrix (feature rows, sample columns)")
	flag.StringVar(&samplesFile, "samples", "", "Path to a delimited per-sample parameter table (delimiter is auto-detected)")
	flag.StringVar(&coordsFile, "coords", "", "Path to the ORF coordinate annotation file (>genome headers with tab-separated idx/start/end rows)")
	flag.StringVar(&configFile, "config", "", "Optional YAML config overriding the biophysical constants")
	flag.StringVar(&outFile, "out", "", "Path for the tab-delimited output matrix. Defaults to stdout.")
	flag.Parse()

	if countsFile == "" {
		log.Fatalln("Please provide -counts")
	}

	if samplesFile == "" {
		log.Fatalln("Please provide -samples")
	}

	if coordsFile == "" {
		log.Fatalln("Please provide -coords")
	}

	reads, err := readCounts(countsFile)
	if err != nil {
		log.Fatalln(err)
	}

	params, err := readParams(samplesFile)
	if err != nil {
		log.Fatalln(err)
	}

	coords, err := syndnaquant.ReadCoordsFile(coordsFile)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Read coordinates for", len(coords), "ORFs")

	cfg := syndnaquant.DefaultConfig()
	if configFile != "" {
		if cfg, err = syndnaquant.LoadConfig(configFile); err != nil {
			log.Fatalln(err)
		}
	}

	out, msgs, err := quantify.CopiesPerGramOfSampleFromCoords(params, reads, coords, cfg)
	if err != nil {
		log.Fatalln(err)
	}

	for _, msg := range msgs {
		log.Println(msg)
	}

	if err := writeOutput(out, outFile); err != nil {
		log.Fatalln(err)
	}
}

func readCounts(path string) (*syndnaquant.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return syndnaquant.ReadCountsTSV(f)
}

// readParams opens the per-sample table twice: once to sniff the
// delimiter, once to parse.
func readParams(path string) (*syndnaquant.SampleInfo, error) {
	sniff, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	delimiter := syndnaquant.DetermineDelimiter(sniff)
	sniff.Close()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return syndnaquant.ReadSampleInfo(f, delimiter, quantify.SampleIDKey)
}

func writeOutput(out *syndnaquant.Table, path string) error {
	if path == "" {
		return out.WriteTSV(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := out.WriteTSV(w); err != nil {
		return err
	}

	return w.Flush()
}
