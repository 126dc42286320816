package syndnaquant

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// ORFCoords is one open reading frame's coordinate span within its parent
// genome. Start need not be less than End; the span direction carries no
// meaning here.
type ORFCoords struct {
	ID    string
	Start int
	End   int
}

// Length returns the inclusive base length of the span.
func (c ORFCoords) Length() int {
	length := c.End - c.Start
	if length < 0 {
		length = -length
	}
	return length + 1
}

// ReadCoords parses an ORF coordinate annotation stream. The format is a
// header line `>genomeID` followed by tab-separated rows of
// (orf index, start, end); each ORF gets the ID `genomeID_index`:
//
//	>G000005825
//	1	816	2168
//	2	2348	3490
func ReadCoords(r io.Reader) ([]ORFCoords, error) {
	var out []ORFCoords
	var genomeID string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ">") {
			genomeID = strings.TrimPrefix(line, ">")
			continue
		}

		if genomeID == "" {
			return nil, pfx.Err(fmt.Errorf("coordinate row %q appears before any genome header", line))
		}

		pieces := strings.Split(line, "\t")
		if len(pieces) < 3 {
			return nil, pfx.Err(fmt.Errorf("coordinate row %q does not have 3 tab-separated fields", line))
		}

		start, err := strconv.Atoi(pieces[1])
		if err != nil {
			return nil, pfx.Err(err)
		}
		end, err := strconv.Atoi(pieces[2])
		if err != nil {
			return nil, pfx.Err(err)
		}

		out = append(out, ORFCoords{
			ID:    genomeID + "_" + pieces[0],
			Start: start,
			End:   end,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// ReadCoordsFile is ReadCoords over a file path.
func ReadCoordsFile(path string) ([]ORFCoords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	return ReadCoords(f)
}

// ORFCopiesPerGram derives each ORF's copies-per-gram factor from its
// coordinate span and the molar mass of one base. Duplicate ORF IDs are an
// error.
func ORFCopiesPerGram(coords []ORFCoords, gPerMole float64) (map[string]float64, error) {
	out := make(map[string]float64, len(coords))
	for _, c := range coords {
		if _, exists := out[c.ID]; exists {
			return nil, fmt.Errorf("duplicate ORF id %q in coordinates", c.ID)
		}

		copies, err := CopiesPerGram(float64(c.Length()), gPerMole)
		if err != nil {
			return nil, fmt.Errorf("ORF %q: %v", c.ID, err)
		}
		out[c.ID] = copies
	}

	return out, nil
}
