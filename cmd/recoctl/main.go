// Command recoctl maintains the artist catalog offline.
//
//	recoctl import  -db reco.db -matrix matrix.json -ids ids.json
//	recoctl nearest -db reco.db -k 5 0.1,0.4,0.9
//
// import validates the matrix and id files and replaces the stored embedding
// rows, so the service can run with EMBEDDING_SOURCE=catalog. nearest runs a
// brute-force query in SQL over the stored raw rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/viant/reco/catalog"
	"github.com/viant/reco/embedding"
	"github.com/viant/reco/internal/logger"
)

func main() {
	log := logger.New(os.Getenv("LOG_LEVEL"))
	if err := run(context.Background(), os.Args[1:], os.Stdout, log); err != nil {
		log.Error("recoctl failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, log *slog.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: recoctl import|nearest [flags]")
	}
	switch args[0] {
	case "import":
		return runImport(ctx, args[1:], out, log)
	case "nearest":
		return runNearest(ctx, args[1:], out)
	default:
		return fmt.Errorf("unknown command %q (valid: import, nearest)", args[0])
	}
}

func runImport(ctx context.Context, args []string, out io.Writer, log *slog.Logger) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(out)
	dsn := fs.String("db", "reco.db", "catalog database")
	matrixPath := fs.String("matrix", "", "feature matrix file (.json, .csv or .bin)")
	idsPath := fs.String("ids", "", "artist id file (.json or .txt)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *matrixPath == "" || *idsPath == "" {
		return fmt.Errorf("import: -matrix and -ids are required")
	}
	store, err := embedding.Load(*matrixPath, *idsPath)
	if err != nil {
		return err
	}
	cat, err := catalog.Open(ctx, *dsn)
	if err != nil {
		return err
	}
	defer cat.Close()
	if err := cat.SaveEmbeddings(ctx, store.IDs, store.Matrix.RowSlices()); err != nil {
		return err
	}
	log.Info("imported embeddings", "db", *dsn, "artists", store.Matrix.Rows(), "dim", store.Matrix.Dim())
	_, err = fmt.Fprintf(out, "imported %d artists (%d dimensions)\n", store.Matrix.Rows(), store.Matrix.Dim())
	return err
}

func runNearest(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("nearest", flag.ContinueOnError)
	fs.SetOutput(out)
	dsn := fs.String("db", "reco.db", "catalog database")
	k := fs.Int("k", 5, "number of neighbours")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("nearest: expected one comma separated point")
	}
	point, err := parsePoint(fs.Arg(0))
	if err != nil {
		return err
	}
	cat, err := catalog.Open(ctx, *dsn)
	if err != nil {
		return err
	}
	defer cat.Close()
	matches, err := cat.NearestSQL(ctx, point, *k)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if _, err := fmt.Fprintf(out, "%d\t%s\t%.6f\n", m.Row, m.ID, m.Distance); err != nil {
			return err
		}
	}
	return nil
}

func parsePoint(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	point := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("nearest: value %d: %w", i, err)
		}
		point[i] = v
	}
	return point, nil
}
