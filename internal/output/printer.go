package output

import (
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatTable:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or table)", s)
	}
}

// Printer writes command results in the selected format. Errors are always
// written as a JSON envelope so scripts can parse them.
type Printer struct {
	Out    io.Writer
	Format Format
}

// Success prints data. In table format, data that is not Tabular falls back
// to the JSON envelope.
func (p Printer) Success(data any, meta map[string]any) error {
	if t, ok := data.(Tabular); ok && p.Format == FormatTable {
		headers, rows := t.Table()
		if err := RenderTable(p.Out, headers, rows); err != nil {
			return err
		}
		return renderMeta(p.Out, meta)
	}
	return JSONSuccess(p.Out, data, meta)
}

func (p Printer) Error(code, message string, details []ErrorDetail) error {
	return JSONError(p.Out, code, message, details)
}
