package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/inference-sim/cpusim/sim"
)

// CSV column order: id,burst,arrival[,priority]. A header row whose first
// field is "id" is skipped.
const (
	csvColID = iota
	csvColBurst
	csvColArrival
	csvColPriority
)

// LoadCSV reads a process list from a CSV file.
func LoadCSV(path string) ([]sim.ProcessSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening process file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseCSV(f)
}

// ParseCSV parses rows of id,burst,arrival with an optional fourth priority
// column, then validates the result.
func ParseCSV(r io.Reader) ([]sim.ProcessSpec, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var specs []sim.ProcessSpec
	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if rowNum == 1 && strings.EqualFold(strings.TrimSpace(row[csvColID]), "id") {
			continue
		}
		spec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", rowNum, err)
		}
		specs = append(specs, spec)
	}
	if err := sim.ValidateSpecs(specs); err != nil {
		return nil, err
	}
	return specs, nil
}

func parseRow(row []string) (sim.ProcessSpec, error) {
	if len(row) < 3 || len(row) > 4 {
		return sim.ProcessSpec{}, fmt.Errorf("want 3 or 4 fields (id,burst,arrival[,priority]), got %d", len(row))
	}
	id, err := strconv.Atoi(strings.TrimSpace(row[csvColID]))
	if err != nil {
		return sim.ProcessSpec{}, fmt.Errorf("id: %w", err)
	}
	burst, err := strconv.ParseInt(strings.TrimSpace(row[csvColBurst]), 10, 64)
	if err != nil {
		return sim.ProcessSpec{}, fmt.Errorf("burst: %w", err)
	}
	arrival, err := strconv.ParseInt(strings.TrimSpace(row[csvColArrival]), 10, 64)
	if err != nil {
		return sim.ProcessSpec{}, fmt.Errorf("arrival: %w", err)
	}
	spec := sim.ProcessSpec{ID: id, ArrivalTime: arrival, BurstTime: burst}
	if len(row) == 4 {
		if spec.Priority, err = strconv.Atoi(strings.TrimSpace(row[csvColPriority])); err != nil {
			return sim.ProcessSpec{}, fmt.Errorf("priority: %w", err)
		}
	}
	return spec, nil
}
