/*
Package bio reads historical samples from external sources (CSV,
SQL, MongoDB) for seeding a forest before incremental updates begin.
None of these readers touch the tree or forest packages' internals;
they only ever produce []*sample.Sample for a caller to feed through
Forest.Add and a single Commit.
*/
package bio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/irforest/sample"
)

/*
ReadCSVSamples takes an io.Reader for a CSV stream and returns the
samples parsed from it or an error.

The header row must start with "suid" and "y"; every subsequent
column header names a feature code (a decimal integer). A blank cell
means the feature is absent from that sample; any other value is
parsed as its float64 weight.
*/
func ReadCSVSamples(reader io.Reader) ([]*sample.Sample, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("bio: reading CSV header: %v", err)
	}
	codeColumns, err := parseCSVHeader(header)
	if err != nil {
		return nil, err
	}

	var samples []*sample.Sample
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bio: reading CSV row %d: %v", l, err)
		}
		s, err := parseCSVRow(row, codeColumns)
		if err != nil {
			return nil, fmt.Errorf("bio: parsing CSV row %d: %v", l, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// ReadCSVSamplesFromFilePath opens filepath (or stdin, if empty) and
// parses it with ReadCSVSamples.
func ReadCSVSamplesFromFilePath(filepath string) ([]*sample.Sample, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("bio: opening %s: %v", filepath, err)
		}
		defer f.Close()
	}
	samples, err := ReadCSVSamples(f)
	if err != nil {
		return nil, fmt.Errorf("bio: reading CSV file %s: %v", filepath, err)
	}
	return samples, nil
}

func parseCSVHeader(header []string) (map[int]int, error) {
	if len(header) < 2 || header[0] != "suid" || header[1] != "y" {
		return nil, fmt.Errorf("bio: CSV header must start with suid,y, got %v", header)
	}
	codeColumns := make(map[int]int, len(header)-2)
	for i := 2; i < len(header); i++ {
		code, err := strconv.Atoi(header[i])
		if err != nil {
			return nil, fmt.Errorf("bio: CSV header column %d (%q) is not a feature code: %v", i, header[i], err)
		}
		codeColumns[i] = code
	}
	return codeColumns, nil
}

func parseCSVRow(row []string, codeColumns map[int]int) (*sample.Sample, error) {
	y, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return nil, fmt.Errorf("converting y value %q to float64: %v", row[1], err)
	}
	codes := make(map[int]float64, len(codeColumns))
	for i, code := range codeColumns {
		if i >= len(row) || row[i] == "" {
			continue
		}
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return nil, fmt.Errorf("converting code %d value %q to float64: %v", code, row[i], err)
		}
		codes[code] = v
	}
	return &sample.Sample{SUID: row[0], Y: y, XCodes: codes}, nil
}
