package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerlens-org/ledgerlens/config"
	"github.com/ledgerlens-org/ledgerlens/dataset"
	"github.com/ledgerlens-org/ledgerlens/engine"
	"github.com/ledgerlens-org/ledgerlens/schema"
	"github.com/ledgerlens-org/ledgerlens/server"
)

// ============================================================================
// LEDGERLENS CLI — Analytics for loosely structured sales exports
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", "", "Path to CSV or XLSX data file")
	sheet := flag.String("sheet", "", "Worksheet name for XLSX files (default: first sheet)")
	serve := flag.Bool("serve", false, "Run the HTTP API server")
	configPath := flag.String("config", "", "Path to YAML config file")
	format := flag.String("format", "json", "Output format: json, pretty, text")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `LedgerLens — analytics for loosely structured sales exports

Usage:
  ledgerlens --file purchases.csv --format pretty
  ledgerlens --file purchases.xlsx --sheet "Q2 Orders" --format text
  ledgerlens --file purchases.csv --out analysis.json
  ledgerlens --serve --config config.yaml

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Formats:
  json      Full analysis as JSON (default)
  pretty    Pretty-printed JSON
  text      Human-readable summary
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("ledgerlens %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("Config: %v", err)
	}

	// ── Server mode ───────────────────────────────────────────────────────
	if *serve {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		if err := server.New(cfg, logger).Run(); err != nil {
			fatalf("Server: %v", err)
		}
		return
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file or --serve is required")
		flag.Usage()
		os.Exit(1)
	}

	// ── Output writer ─────────────────────────────────────────────────────
	writer := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	// ── Analyze ───────────────────────────────────────────────────────────
	ds, err := loadDataset(*filePath, *sheet)
	if err != nil {
		fatalf("Failed to load %s: %v", *filePath, err)
	}

	roles := schema.Detect(ds)
	result := engine.Analyze(ds, roles,
		engine.WithTopVendors(cfg.TopVendors),
		engine.WithOtherLabel(cfg.OtherLabel),
		engine.WithDefaultCurrency(cfg.DefaultCurrency),
	)

	switch *format {
	case "text":
		writeText(writer, result)
	default:
		writeJSON(writer, result, *format)
	}
}

func loadDataset(path, sheet string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		if sheet != "" {
			return dataset.FromXLSXSheet(f, sheet)
		}
		return dataset.FromXLSX(f)
	default:
		return dataset.FromCSV(f)
	}
}

// ============================================================================
// OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v any, format string) {
	enc := json.NewEncoder(w)
	if format == "pretty" {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		fatalf("Failed to encode output: %v", err)
	}
}

func writeText(w io.Writer, r engine.Result) {
	fmt.Fprintf(w, "Records:      %d\n", r.TotalRecords)
	fmt.Fprintf(w, "Total sales:  %.2f\n", r.TotalSales)
	fmt.Fprintf(w, "Paid:         %.2f\n", r.PaidSales)
	fmt.Fprintf(w, "Outstanding:  %.2f\n", r.OutstandingPayments)
	fmt.Fprintf(w, "Average sale: %.2f\n", r.AverageSaleValue)
	if r.DateRange.Start != nil && r.DateRange.End != nil {
		fmt.Fprintf(w, "Date range:   %s to %s\n",
			r.DateRange.Start.Format("2006-01-02"), r.DateRange.End.Format("2006-01-02"))
	}

	sections := []struct {
		name string
		b    engine.Breakdown
	}{
		{"Vendors", r.ByVendor},
		{"Payment types", r.ByPaymentType},
		{"Shipping types", r.ByShippingType},
		{"Months", r.ByMonth},
		{"Order types", r.ByOrderType},
		{"Item vs service", r.ByItemService},
		{"Currencies", r.ByCurrency},
	}
	for _, s := range sections {
		if len(s.b.Buckets) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", s.name)
		for _, bucket := range s.b.Buckets {
			fmt.Fprintf(w, "  %-24s %6d  %12.2f\n", bucket.Key, bucket.Count, bucket.Total)
		}
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
