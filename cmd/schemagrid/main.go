// Command schemagrid renders the records of a schema driven
// table field as CSV, HTML, or Excel, or prints the derived
// column descriptors and grid configuration as JSON.
//
// Usage:
//
//	schemagrid -schema schema.json [-ui ui.json] [-data data.json] [-format csv|html|xlsx|columns|config] [-nil text] [-out file]
//
// Records can be queried from PostgreSQL instead of a data file:
//
//	schemagrid -schema schema.json -db postgres://localhost/invoices -query "SELECT * FROM invoice"
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-schemagrid"
	"github.com/domonda/go-schemagrid/csvtable"
	"github.com/domonda/go-schemagrid/exceltable"
	"github.com/domonda/go-schemagrid/gridfile"
	"github.com/domonda/go-schemagrid/htmltable"
	"github.com/domonda/go-schemagrid/sqltable"
)

var (
	schemaFile = flag.String("schema", "", "JSON or YAML schema file (required)")
	uiFile     = flag.String("ui", "", "JSON or YAML UI schema file")
	dataFile   = flag.String("data", "", "records as JSON, YAML, CSV, or XLSX file")
	dbURL      = flag.String("db", "", "PostgreSQL connection URL to query records from")
	query      = flag.String("query", "", "SQL query returning the records, requires -db")
	format     = flag.String("format", "csv", "output format: csv, html, xlsx, columns, config")
	outFile    = flag.String("out", "", "output file, standard output if empty")
	title      = flag.String("title", "", "table title, defaults to the schema title")
	separator  = flag.String("separator", ";", "CSV separator")
	nilValue   = flag.String("nil", "", "text written for cells without value")
	expand     = flag.Bool("expand", false, "write the expanded content of rows after the HTML table")
	logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFormat  = flag.String("log-format", "text", "log format: text, json")
)

func main() {
	flag.Parse()
	setupLogging(*logLevel, *logFormat)

	if *schemaFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		slog.Error("schemagrid failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	docs, err := gridfile.Load(fs.File(*schemaFile), fs.File(*uiFile), fs.File(*dataFile))
	if err != nil {
		return err
	}
	if *dbURL != "" {
		docs.Records, err = queryRecords(ctx, *dbURL, *query, docs.Schema)
		if err != nil {
			return err
		}
	}
	slog.Debug("documents loaded",
		"fields", docs.Schema.Properties.Len(),
		"columns", len(docs.UISchema.Table.TableCols),
		"records", len(docs.Records),
	)

	field := schemagrid.NewTableField(docs.Props(nil))
	field.Logger = slog.Default()
	conf, columns, err := field.Render()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = write(ctx, &buf, field, conf, columns)
	if err != nil {
		return err
	}

	if *outFile == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	err = fs.File(*outFile).WriteAll(buf.Bytes())
	if err != nil {
		return err
	}
	slog.Info("table written", "file", *outFile, "format", *format, "rows", len(conf.Data))
	return nil
}

// queryRecords reads the records of schema from the rows of a SQL query.
func queryRecords(ctx context.Context, connURL, sqlQuery string, schema *schemagrid.Schema) ([]schemagrid.Record, error) {
	if sqlQuery == "" {
		return nil, errors.New("-db requires -query")
	}
	pool, err := pgxpool.New(ctx, connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	records, err := sqltable.ReadRecords(ctx, sqltable.PgxRows(rows), schema, nil)
	if err != nil {
		return nil, err
	}
	slog.Info("records queried", "rows", len(records))
	return records, nil
}

func write(ctx context.Context, dest io.Writer, field *schemagrid.TableField, conf *schemagrid.GridConfig, columns []schemagrid.Column) error {
	tableTitle := *title
	if tableTitle == "" {
		tableTitle = field.Props().Schema.Title
	}
	view := schemagrid.NewGridView(tableTitle, columns, conf.Data, nil)

	switch strings.ToLower(*format) {
	case "csv":
		writer, err := csvtable.NewWriterForFormat(csvtable.NewFormat(*separator))
		if err != nil {
			return err
		}
		return writer.
			WithHeaderRow(true).
			WithNilValue(*nilValue).
			WriteView(ctx, dest, view)

	case "html":
		err := htmltable.NewWriter().
			WithHeaderRow(true).
			WithTableClass("table").
			WithGrid(view, conf.TrClassName).
			WithFormatter(htmltable.JSONCellFormatter("")).
			WithNilValue(template.HTML(template.HTMLEscapeString(*nilValue))). //#nosec G203
			WriteView(ctx, dest, view)
		if err != nil || !*expand || !field.IsRowExpandable() {
			return err
		}
		for _, row := range conf.Data {
			content, err := field.ExpandRow(row)
			if err != nil {
				return err
			}
			if _, err = io.WriteString(dest, "\n"); err != nil {
				return err
			}
			if err = htmltable.WriteExpanded(dest, content); err != nil {
				return err
			}
		}
		return nil

	case "xlsx":
		return exceltable.WriteView(ctx, dest, view)

	case "columns":
		return writeJSON(dest, columns)

	case "config":
		return writeJSON(dest, conf)
	}
	return fmt.Errorf("unsupported format %q", *format)
}

func writeJSON(dest io.Writer, v any) error {
	enc := json.NewEncoder(dest)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// setupLogging configures the default slog logger writing to stderr
// so that logs never mix with table output on stdout.
func setupLogging(level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
