package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Options tune file loading.
type Options struct {
	// Sheet selects the worksheet of an XLSX workbook.
	Sheet string
}

// Load reads a dataset file and stamps it with an identity derived from the
// path and modification time, so reloading an unchanged file keeps chart
// state while an edited file resets it.
func Load(path string, opts Options) (Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format := strings.TrimPrefix(ext, ".")
	st, err := os.Stat(path)
	if err != nil {
		return Data{}, newLoadError(path, format, err)
	}
	var d Data
	switch ext {
	case ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return Data{}, newLoadError(path, format, err)
		}
		d, err = ParseJSON(b)
		if err != nil {
			return Data{}, newLoadError(path, format, err)
		}
	case ".csv":
		b, err := os.ReadFile(path)
		if err != nil {
			return Data{}, newLoadError(path, format, err)
		}
		d, err = ParseCSV(bytes.NewReader(b))
		if err != nil {
			return Data{}, newLoadError(path, format, err)
		}
	case ".xlsx":
		g, err := LoadXLSX(path, opts.Sheet)
		if err != nil {
			return Data{}, newLoadError(path, format, err)
		}
		d = Data{Kind: KindGrid, Grid: g}
	default:
		return Data{}, newLoadError(path, format, ErrUnsupportedFormat)
	}
	d.setID(fmt.Sprintf("%s@%d", path, st.ModTime().UnixNano()))
	return d, nil
}

// Parse reads pasted text: JSON first, CSV otherwise. Each paste is a new
// dataset identity.
func Parse(text string) (Data, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Data{}, newLoadError("", "paste", ErrEmptyDataset)
	}
	var (
		d   Data
		err error
	)
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		d, err = ParseJSON([]byte(text))
	} else {
		d, err = ParseCSV(strings.NewReader(text))
	}
	if err != nil {
		return Data{}, newLoadError("", "paste", err)
	}
	d.setID("paste:" + uuid.NewString())
	return d, nil
}

// IsSupported reports whether Load handles the file extension.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".csv", ".xlsx":
		return true
	}
	return false
}

func (d *Data) setID(id string) {
	d.Grid.ID = id
	d.Curves.ID = id
}
