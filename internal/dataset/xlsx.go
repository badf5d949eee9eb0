package dataset

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads a grid from one worksheet laid out like the wide CSV form.
// An empty sheet name selects the first sheet.
func LoadXLSX(path, sheet string) (Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Grid{}, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Grid{}, errors.New("xlsx: workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Grid{}, err
	}
	if len(rows) == 0 {
		return Grid{}, ErrEmptyDataset
	}
	return gridFromRecords(rows)
}
