package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/civiq/internal/model"
)

type memoryZipWriter struct {
	rows      []model.ZipDistrict
	truncated bool
	batches   int
	failOn    int
}

func (w *memoryZipWriter) EnsureSchema(ctx context.Context) error { return nil }

func (w *memoryZipWriter) Truncate(ctx context.Context) error {
	w.truncated = true
	w.rows = nil
	return nil
}

func (w *memoryZipWriter) SaveBatch(ctx context.Context, rows []model.ZipDistrict) (int, error) {
	w.batches++
	if w.failOn == w.batches {
		return 0, errors.New("database unavailable")
	}
	w.rows = append(w.rows, rows...)
	return len(rows), nil
}

const relationshipFile = `ZCTA,State,Congressional District
48202,26,12
48202,26,13
82001,56,00
20001,11,98
00601,72,98
99999,99,01
96799,60,ZZ
4820,26,12
`

func TestZipImporter_Import(t *testing.T) {
	writer := &memoryZipWriter{}
	importer := NewZipImporter(writer)

	stats, err := importer.Import(context.Background(), strings.NewReader(relationshipFile), true)
	require.NoError(t, err)

	assert.True(t, writer.truncated)
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 5, stats.Imported)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 2, stats.Failed)

	assert.Equal(t, []model.ZipDistrict{
		{Zip: "48202", State: "MI", District: "12"},
		{Zip: "48202", State: "MI", District: "13"},
		{Zip: "82001", State: "WY", District: "01"},
		{Zip: "20001", State: "DC", District: "01"},
		{Zip: "00601", State: "PR", District: "01"},
	}, writer.rows)
}

func TestZipImporter_Batches(t *testing.T) {
	writer := &memoryZipWriter{}
	importer := NewZipImporter(writer)
	importer.batchSize = 2

	stats, err := importer.Import(context.Background(), strings.NewReader(relationshipFile), false)
	require.NoError(t, err)
	assert.Equal(t, 3, writer.batches)
	assert.Equal(t, 5, stats.Imported)
}

func TestZipImporter_BatchFailure(t *testing.T) {
	writer := &memoryZipWriter{failOn: 1}
	importer := NewZipImporter(writer)
	importer.batchSize = 2

	stats, err := importer.Import(context.Background(), strings.NewReader(relationshipFile), false)
	assert.ErrorContains(t, err, "database unavailable")
	assert.Equal(t, 2, stats.Failed)
}

func TestZipImporter_BadHeader(t *testing.T) {
	importer := NewZipImporter(&memoryZipWriter{})

	_, err := importer.Import(context.Background(), strings.NewReader("GEOID,NAME\n1,2\n"), false)
	assert.ErrorContains(t, err, "unrecognized header")
}

func TestZipImporter_PrintSummary(t *testing.T) {
	var buf bytes.Buffer
	NewZipImporter(&memoryZipWriter{}).PrintSummary(&buf, &ImportStats{Total: 10, Imported: 8, Skipped: 1, Failed: 1})

	out := buf.String()
	assert.Contains(t, out, "Imported:        8")
	assert.Contains(t, out, "Success rate:    88.9%")
}
