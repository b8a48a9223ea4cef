// Package export renders a checklist as JSON, CSV or PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"checklist/internal/checklist"
)

// Format names an export format.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	PDF  Format = "pdf"
)

// Title heads the PDF export.
const Title = "Christmas Checklist"

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, CSV, PDF:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %s", s)
	}
}

// Render renders tasks in the given format.
func Render(tasks checklist.TaskList, format Format) ([]byte, error) {
	switch format {
	case JSON:
		return renderJSON(tasks)
	case CSV:
		return renderCSV(tasks)
	case PDF:
		return renderPDF(tasks)
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

// renderJSON uses the storage layout, indented, with a trailing newline.
func renderJSON(tasks checklist.TaskList) ([]byte, error) {
	if tasks == nil {
		tasks = checklist.TaskList{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func renderCSV(tasks checklist.TaskList) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "text", "checked"})
	for _, t := range tasks {
		_ = w.Write([]string{strconv.Itoa(t.ID), t.Text, strconv.FormatBool(t.Checked)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(tasks checklist.TaskList) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, Title)
	pdf.Ln(14)

	// core fonts are cp1252; map UTF-8 labels onto it
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "", 11)
	for _, t := range tasks {
		mark := "[ ]"
		if t.Checked {
			mark = "[x]"
		}
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%s  %s", mark, t.Text)), "0", "L", false)
	}

	p := tasks.Progress()
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(0, 8, fmt.Sprintf("%d of %d tasks completed (%.0f%%)", p.Completed, p.Total, p.Percentage))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
