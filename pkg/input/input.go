// Package input loads IFV sets from JSON, YAML and CSV documents.
package input

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mchmarny/riq/pkg/ifv"
	"gopkg.in/yaml.v3"
)

// Format is an input document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"

	// StdinPath is the path that makes LoadFile read from stdin.
	StdinPath = "-"
)

var (
	// Formats lists the supported input formats.
	Formats = []Format{FormatJSON, FormatYAML, FormatCSV}

	ErrUnknownFormat = errors.New("unknown input format")
	ErrMissingColumn = errors.New("missing required column")

	csvColumns = []string{"name", "mu", "nu"}
)

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath infers the format from the file extension.
// Unknown extensions and stdin default to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	default:
		return FormatJSON
	}
}

// LoadFile reads an IFV set from path, or from stdin when path is "-".
// An empty format is inferred from the path.
func LoadFile(path string, format Format) ([]ifv.IFV, error) {
	if format == "" {
		format = FormatFromPath(path)
	}

	if path == StdinPath || path == "" {
		slog.Debug("reading ifv set from stdin", "format", format)
		return Load(os.Stdin, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file %s: %w", path, err)
	}
	defer f.Close()

	slog.Debug("reading ifv set", "path", path, "format", format)

	list, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return list, nil
}

// Load decodes an IFV set from r. No range checks are made on the
// degrees; an empty document yields an empty set.
func Load(r io.Reader, format Format) ([]ifv.IFV, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return []ifv.IFV{}, nil
	}

	switch format {
	case FormatJSON:
		return decodeJSON(b)
	case FormatYAML:
		return decodeYAML(b)
	case FormatCSV:
		return decodeCSV(b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func decodeJSON(b []byte) ([]ifv.IFV, error) {
	list := make([]ifv.IFV, 0)
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	if list == nil {
		list = []ifv.IFV{}
	}
	return list, nil
}

func decodeYAML(b []byte) ([]ifv.IFV, error) {
	list := make([]ifv.IFV, 0)
	if err := yaml.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if list == nil {
		list = []ifv.IFV{}
	}
	return list, nil
}

func decodeCSV(b []byte) ([]ifv.IFV, error) {
	r := csv.NewReader(bytes.NewReader(b))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range csvColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	list := make([]ifv.IFV, 0)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record: %w", err)
		}

		line, _ := r.FieldPos(0)
		v, err := parseRecord(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		list = append(list, v)
	}

	return list, nil
}

func parseRecord(rec []string, cols map[string]int) (ifv.IFV, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(rec) {
			return "", fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		return strings.TrimSpace(rec[i]), nil
	}

	name, err := field("name")
	if err != nil {
		return ifv.IFV{}, err
	}

	v := ifv.IFV{Name: name}
	for _, d := range []struct {
		col string
		dst *float64
	}{
		{"mu", &v.Mu},
		{"nu", &v.Nu},
	} {
		s, err := field(d.col)
		if err != nil {
			return ifv.IFV{}, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ifv.IFV{}, fmt.Errorf("parsing %s value %q: %w", d.col, s, err)
		}
		*d.dst = f
	}

	return v, nil
}
