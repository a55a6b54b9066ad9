package csvio

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/table"
)

const defaultPerm os.FileMode = 0o644

// Write renders the label row, the column names and every row of store.
// Missing cells are written as empty fields.
func Write(w io.Writer, store *table.Store, delim rune) error {
	if delim == Auto {
		delim = ','
	}
	cw := csv.NewWriter(w)
	cw.Comma = delim

	label := store.Label()
	if len(label) == 0 {
		label = store.ColumnNames()
	}
	if err := writeRecord(w, cw, label); err != nil {
		return err
	}
	if err := writeRecord(w, cw, store.ColumnNames()); err != nil {
		return err
	}
	for _, rec := range store.Records() {
		if err := writeRecord(w, cw, rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeRecord writes rec, quoting a lone empty field so the line is not read
// back as blank and skipped.
func writeRecord(w io.Writer, cw *csv.Writer, rec []string) error {
	if len(rec) == 1 && rec[0] == "" {
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\"\"\n")
		return err
	}
	return cw.Write(rec)
}

// Save writes store to path. The data goes to a temporary file in the same
// directory which then replaces path, so a failed save leaves the old file
// intact. An existing file keeps its permissions.
func Save(path string, store *table.Store, delim rune) error {
	var buf bytes.Buffer
	if err := Write(&buf, store, delim); err != nil {
		return errors.NewFileError("encode failed", err).WithPath(path)
	}

	perm := defaultPerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := atomicWriteFile(path, buf.Bytes(), perm); err != nil {
		return errors.NewFileError("save failed", err).WithPath(path)
	}
	return nil
}

func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cairos-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return errors.Wrap(err, "failed to set permissions")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "failed to rename temp file")
	}

	success = true
	return nil
}
