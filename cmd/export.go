package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/emcdo411/greenland-ree-dashboard/internal/dataset"
	"github.com/emcdo411/greenland-ree-dashboard/internal/deposit"
	"github.com/emcdo411/greenland-ree-dashboard/internal/geo"
	"github.com/emcdo411/greenland-ree-dashboard/internal/scenario"
	"github.com/emcdo411/greenland-ree-dashboard/internal/store"
)

// fileFormats maps file export formats to their extension. "all" writes each
// of them.
var fileFormats = map[string]string{
	"csv":     ".csv",
	"xlsx":    ".xlsx",
	"geojson": ".geojson",
	"shp":     ".shp",
}

var allFormats = []string{"csv", "xlsx", "geojson", "shp"}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export deposits or a scenario to files or a snapshot store",
	Long: `Writes the filtered deposits, adjusted by the scenario flags when given, as
CSV, XLSX, GeoJSON or a point shapefile, or records them as a labelled
snapshot in SQLite or Postgres. --format all writes every file format
concurrently into --output (a directory).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := cfg.Validate("export"); err != nil {
			return err
		}

		t, err := loadTable(ctx)
		if err != nil {
			return err
		}
		f, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		sc, err := scenarioFromFlags(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		label, _ := cmd.Flags().GetString("label")

		res := scenario.Apply(t.Filter(f), sc)
		switch format {
		case store.DriverSQLite, store.DriverPostgres:
			dsn := output
			if dsn == "" {
				dsn = cfg.Store.DatabaseURL
			}
			return exportSnapshot(ctx, format, dsn, label, res)
		default:
			paths, err := exportFiles(ctx, format, output, res, time.Now())
			if err != nil {
				return err
			}
			for _, p := range paths {
				_, _ = os.Stdout.WriteString(p + "\n")
			}
			return nil
		}
	},
}

// exportFiles writes res in the requested file format(s) and returns the
// paths written. For a single format, output is the file path; for "all" it
// is the directory. An empty output uses export.dir and the dated file stem.
func exportFiles(ctx context.Context, format, output string, res scenario.Result, now time.Time) ([]string, error) {
	formats := []string{format}
	dir, stem := cfg.Export.Dir, dataset.FileStem(cfg.Export.FilePrefix, now)
	if format == "all" {
		formats = allFormats
		if output != "" {
			dir = output
		}
		output = ""
	} else if _, ok := fileFormats[format]; !ok {
		return nil, eris.Errorf("unknown export format %q (csv, xlsx, geojson, shp, sqlite, postgres, all)", format)
	}
	if output == "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "export: create %s", dir)
		}
	}

	t, extras := exportTable(res)
	paths := make([]string, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		path := output
		if path == "" {
			path = filepath.Join(dir, stem+fileFormats[f])
		}
		paths[i] = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return writeExport(f, path, t, extras)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	zap.L().Info("export complete", zap.Strings("paths", paths), zap.Int("rows", t.Len()))
	return paths, nil
}

// exportTable returns the adjusted table, plus a score_change column when the
// scenario moved anything.
func exportTable(res scenario.Result) (deposit.Table, []dataset.Extra) {
	if res.Config.IsIdentity() {
		return res.BaselineTable(), nil
	}
	return res.Adjusted(), []dataset.Extra{{Name: "score_change", Values: res.ScoreChanges()}}
}

func writeExport(format, path string, t deposit.Table, extras []dataset.Extra) error {
	if format == "shp" {
		return geo.WriteShapefile(path, t, extras...)
	}

	var write func(io.Writer, deposit.Table, ...dataset.Extra) error
	switch format {
	case "csv":
		write = dataset.WriteCSV
	case "xlsx":
		write = dataset.WriteXLSX
	case "geojson":
		write = geo.WriteGeoJSON
	default:
		return eris.Errorf("export: unknown format %q", format)
	}

	fh, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := write(fh, t, extras...); err != nil {
		_ = fh.Close()
		return eris.Wrapf(err, "export: write %s", path)
	}
	return eris.Wrapf(fh.Close(), "export: close %s", path)
}

func exportSnapshot(ctx context.Context, driver, dsn, label string, res scenario.Result) error {
	sink, err := store.Open(ctx, driver, dsn)
	if err != nil {
		return err
	}
	defer sink.Close() //nolint:errcheck

	if label == "" {
		label = strings.ReplaceAll(res.Config.Key(), "|", " ")
	}
	snap := store.NewSnapshot(label, res)
	n, err := sink.WriteSnapshot(ctx, snap)
	if err != nil {
		return err
	}
	zap.L().Info("snapshot written",
		zap.String("driver", driver),
		zap.String("id", snap.ID),
		zap.String("label", label),
		zap.Int64("rows", n),
	)
	_, _ = os.Stdout.WriteString(snap.ID + "\n")
	return nil
}

func init() {
	addFilterFlags(exportCmd)
	addScenarioFlags(exportCmd)
	exportCmd.Flags().String("format", "csv", "csv, xlsx, geojson, shp, sqlite, postgres or all")
	exportCmd.Flags().StringP("output", "o", "", "output file (directory for all, DSN for sqlite/postgres)")
	exportCmd.Flags().String("label", "", "snapshot label (default derived from the scenario)")
	rootCmd.AddCommand(exportCmd)
}
