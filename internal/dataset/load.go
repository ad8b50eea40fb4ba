package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
)

//go:embed data/greenland_ree.csv
var baselineCSV []byte

var baseline = sync.OnceValues(func() (deposit.Table, error) {
	t, err := ReadCSV(context.Background(), bytes.NewReader(baselineCSV), CSVOptions{})
	if err != nil {
		return deposit.Table{}, eris.Wrap(err, "dataset: decode bundled baseline")
	}
	return t, nil
})

// Baseline returns the bundled Greenland deposit table. It is decoded once
// per process; the returned Table is immutable and safe to share.
func Baseline() (deposit.Table, error) {
	return baseline()
}

// Load reads a deposit table from a .csv, .tsv or .xlsx file. An empty path
// returns the bundled baseline.
func Load(ctx context.Context, path string) (deposit.Table, error) {
	if path == "" {
		return Baseline()
	}

	log := zap.L().With(zap.String("component", "dataset.load"))

	var (
		t   deposit.Table
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		t, err = ReadXLSX(path, XLSXOptions{})
	case ".csv", ".tsv", ".txt":
		t, err = readDelimited(ctx, path)
	default:
		return deposit.Table{}, eris.Errorf("dataset: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return deposit.Table{}, eris.Wrapf(err, "dataset: load %s", path)
	}

	log.Info("loaded deposit table", zap.String("path", path), zap.Int("rows", t.Len()))
	return t, nil
}

func readDelimited(ctx context.Context, path string) (deposit.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return deposit.Table{}, eris.Wrap(err, "dataset: open file")
	}
	defer f.Close() //nolint:errcheck

	opts := CSVOptions{}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		opts.Delimiter = '\t'
	}
	return ReadCSV(ctx, f, opts)
}
