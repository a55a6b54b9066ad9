// Package csvio reads and writes the flat delimited files the editor works
// on. Line 1 holds a free-form label row kept verbatim, line 2 the column
// names, and every following line one data row.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/table"
)

// Options control how a file is parsed into a store.
type Options struct {
	// Delimiter separates fields. Auto sniffs it from the data.
	Delimiter rune
	// Placeholder is used for cells of rows inserted later.
	Placeholder string
	// TableOptions are passed through to the store.
	TableOptions []table.Option
}

// Result is a parsed file.
type Result struct {
	Store     *table.Store
	Delimiter rune
}

// Read parses a label row, a header row and data rows from r. Rows shorter
// than the header are padded with missing cells; longer rows, a missing
// header and duplicate column names are malformed.
func Read(r io.Reader, opts Options) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewFileError("read failed", err)
	}

	delim := opts.Delimiter
	if delim == Auto {
		delim = Sniff(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	var (
		label   []string
		header  []string
		records [][]string
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			return nil, errors.NewFileError(err.Error(), errors.ErrMalformedFile).WithLine(line)
		}
		line, _ := cr.FieldPos(0)

		switch {
		case label == nil:
			label = rec
		case header == nil:
			if err := checkHeader(rec); err != nil {
				return nil, errors.NewFileError(err.Error(), errors.ErrMalformedFile).WithLine(line)
			}
			header = rec
		default:
			if len(rec) > len(header) {
				return nil, errors.NewFileError(
					fmt.Sprintf("row has %d fields, header has %d", len(rec), len(header)),
					errors.ErrMalformedFile,
				).WithLine(line)
			}
			for len(rec) < len(header) {
				rec = append(rec, "")
			}
			records = append(records, rec)
		}
	}

	if header == nil {
		return nil, errors.NewFileError("file needs a label row and a header row", errors.ErrMalformedFile)
	}

	tableOpts := append([]table.Option{table.WithLabel(label)}, opts.TableOptions...)
	if opts.Placeholder != "" {
		tableOpts = append(tableOpts, table.WithPlaceholder(opts.Placeholder))
	}
	store, err := table.FromRecords(header, records, tableOpts...)
	if err != nil {
		return nil, errors.NewFileError("cannot build table", errors.Join(errors.ErrMalformedFile, err))
	}
	return &Result{Store: store, Delimiter: delim}, nil
}

// Load reads the file at path.
func Load(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("open failed", err).WithPath(path)
	}
	defer f.Close()

	res, err := Read(f, opts)
	if err != nil {
		var fileErr *errors.FileError
		if errors.As(err, &fileErr) {
			return nil, fileErr.WithPath(path)
		}
		return nil, err
	}
	return res, nil
}

func checkHeader(names []string) error {
	seen := make(map[string]int, len(names))
	for i, name := range names {
		if j, ok := seen[name]; ok {
			return fmt.Errorf("duplicate column name %q at positions %d and %d", name, j, i)
		}
		seen[name] = i
	}
	return nil
}
