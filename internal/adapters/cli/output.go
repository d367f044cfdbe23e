// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides output adapters for CLI operations.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/smoothtype/smoothtype/internal/domain"
)

// OutputFormat represents the output format type.
type OutputFormat int

const (
	// TextFormat outputs human-readable text.
	TextFormat OutputFormat = iota
	// JSONFormat outputs machine-readable JSON.
	JSONFormat
)

// OutputAdapter implements domain.OutputPort on stdout. Human messages go
// to stderr through the console package; stdout carries results only.
type OutputAdapter struct {
	writer io.Writer
	format OutputFormat
	quiet  bool
}

// NewOutputAdapter creates an output adapter writing results to writer.
func NewOutputAdapter(writer io.Writer, format OutputFormat, quiet bool) *OutputAdapter {
	return &OutputAdapter{
		writer: writer,
		format: format,
		quiet:  quiet,
	}
}

// Success prints message in text mode, or data as JSON in JSON mode.
// JSON results are printed even when quiet.
func (o *OutputAdapter) Success(message string, data interface{}) error {
	if o.format == JSONFormat {
		if data == nil {
			data = map[string]string{"message": message}
		}

		return o.outputJSON(data)
	}

	if message != "" && !o.quiet {
		_, _ = fmt.Fprintln(o.writer, message)
	}

	return nil
}

// Error outputs an error message. JSON errors are printed even when quiet.
func (o *OutputAdapter) Error(message string) error {
	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"error": message})
	}

	if o.quiet {
		return nil
	}

	_, _ = fmt.Fprintf(o.writer, "Error: %s\n", message)

	return nil
}

// Info outputs an informational message.
func (o *OutputAdapter) Info(message string) error {
	if o.quiet {
		return nil
	}

	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"info": message})
	}

	_, _ = fmt.Fprintln(o.writer, message)

	return nil
}

// Table outputs tabular data.
func (o *OutputAdapter) Table(headers []string, rows [][]string) error {
	if o.format == JSONFormat {
		records := make([]map[string]string, 0, len(rows))

		for _, row := range rows {
			record := make(map[string]string, len(headers))
			for i, header := range headers {
				if i < len(row) {
					record[strings.ToLower(header)] = row[i]
				}
			}

			records = append(records, record)
		}

		return o.outputJSON(records)
	}

	if o.quiet {
		return nil
	}

	w := tabwriter.NewWriter(o.writer, 0, 0, 2, ' ', 0)

	defer func() { _ = w.Flush() }()

	if len(headers) > 0 {
		_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	}

	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return nil
}

// IsQuiet returns true if output should be suppressed.
func (o *OutputAdapter) IsQuiet() bool {
	return o.quiet
}

// IsJSON reports whether results are rendered as JSON.
func (o *OutputAdapter) IsJSON() bool {
	return o.format == JSONFormat
}

func (o *OutputAdapter) outputJSON(data interface{}) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}

var _ domain.OutputPort = (*OutputAdapter)(nil)
