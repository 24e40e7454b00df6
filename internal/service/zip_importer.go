package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jjenkins/civiq/internal/logging"
	"github.com/jjenkins/civiq/internal/model"
)

const defaultImportBatchSize = 1000

// ZipWriter persists ZIP to district rows
type ZipWriter interface {
	EnsureSchema(ctx context.Context) error
	Truncate(ctx context.Context) error
	SaveBatch(ctx context.Context, rows []model.ZipDistrict) (int, error)
}

// ImportStats tracks import statistics
type ImportStats struct {
	Total    int
	Imported int
	Skipped  int
	Failed   int
}

// ZipImporter loads the Census ZCTA to congressional district relationship
// file. Columns are located by header name; the state column holds FIPS
// codes.
type ZipImporter struct {
	writer    ZipWriter
	batchSize int
}

// NewZipImporter creates a new ZipImporter
func NewZipImporter(writer ZipWriter) *ZipImporter {
	return &ZipImporter{writer: writer, batchSize: defaultImportBatchSize}
}

// Import reads the relationship file from r. truncate clears the table
// first.
func (i *ZipImporter) Import(ctx context.Context, r io.Reader, truncate bool) (*ImportStats, error) {
	stats := &ImportStats{}

	if err := i.writer.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	if truncate {
		logging.Info("Truncating zip_districts")
		if err := i.writer.Truncate(ctx); err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	zipCol, stateCol, districtCol, err := relationshipColumns(header)
	if err != nil {
		return nil, err
	}

	batch := make([]model.ZipDistrict, 0, i.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		saved, err := i.writer.SaveBatch(ctx, batch)
		if err != nil {
			stats.Failed += len(batch)
			return err
		}
		stats.Imported += saved
		batch = batch[:0]
		return nil
	}

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			logging.Warn("Skipping malformed line", zap.Int("line", line), zap.Error(err))
			stats.Total++
			stats.Failed++
			continue
		}
		if len(record) <= max(zipCol, stateCol, districtCol) {
			stats.Total++
			stats.Failed++
			continue
		}

		stats.Total++
		row, skip, err := parseRelationship(record[zipCol], record[stateCol], record[districtCol])
		switch {
		case err != nil:
			logging.Warn("Rejecting zip row", zap.Int("line", line), zap.Error(err))
			stats.Failed++
			continue
		case skip:
			stats.Skipped++
			continue
		}

		batch = append(batch, row)
		if len(batch) >= i.batchSize {
			if err := flush(); err != nil {
				return stats, fmt.Errorf("failed to save batch ending at line %d: %w", line, err)
			}
		}
	}

	if err := flush(); err != nil {
		return stats, fmt.Errorf("failed to save final batch: %w", err)
	}

	return stats, nil
}

func relationshipColumns(header []string) (zip, state, district int, err error) {
	zip, state, district = -1, -1, -1
	for idx, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "zcta", "zcta5", "zip":
			zip = idx
		case "state", "statefp":
			state = idx
		case "congressional district", "cd", "district":
			district = idx
		}
	}
	if zip < 0 || state < 0 || district < 0 {
		return 0, 0, 0, fmt.Errorf("unrecognized header %q: want ZCTA,State,Congressional District", strings.Join(header, ","))
	}
	return zip, state, district, nil
}

// parseRelationship converts one file row. "ZZ" marks water or unassigned
// areas and is skipped.
func parseRelationship(zip, stateFIPS, district string) (model.ZipDistrict, bool, error) {
	zip = strings.TrimSpace(zip)
	if len(zip) != 5 {
		return model.ZipDistrict{}, false, &NormalizationError{Field: "zcta", Value: zip, Reason: "not a five digit ZIP"}
	}

	if strings.EqualFold(strings.TrimSpace(district), "ZZ") {
		return model.ZipDistrict{}, true, nil
	}

	state, known := StateFromFIPS(strings.TrimSpace(stateFIPS))
	if !known {
		return model.ZipDistrict{}, false, &NormalizationError{Field: "state", Value: stateFIPS, Reason: "unknown FIPS code"}
	}

	code, err := NormalizeStateDistrict(state, district)
	if err != nil {
		return model.ZipDistrict{}, false, err
	}

	return model.ZipDistrict{Zip: zip, State: state, District: code}, false, nil
}

// PrintSummary writes the import statistics
func (i *ZipImporter) PrintSummary(w io.Writer, stats *ImportStats) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "=== Import Summary ===")
	fmt.Fprintf(w, "Total rows:      %d\n", stats.Total)
	fmt.Fprintf(w, "Imported:        %d\n", stats.Imported)
	fmt.Fprintf(w, "Skipped:         %d (unassigned)\n", stats.Skipped)
	fmt.Fprintf(w, "Failed:          %d\n", stats.Failed)

	if attempted := stats.Total - stats.Skipped; attempted > 0 {
		successRate := float64(stats.Imported) / float64(attempted) * 100
		fmt.Fprintf(w, "Success rate:    %.1f%%\n", successRate)
	}
}
