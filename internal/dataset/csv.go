package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// curveColumns locates the series/x/y columns of a curve CSV.
// Column detection: id|series|name, x|position|step, y|value (case-insensitive).
func curveColumns(header []string) (idxID, idxX, idxY int, ok bool) {
	idxID, idxX, idxY = -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id", "series", "name":
			if idxID == -1 {
				idxID = i
			}
		case "x", "position", "step":
			if idxX == -1 {
				idxX = i
			}
		case "y", "value":
			if idxY == -1 {
				idxY = i
			}
		}
	}
	return idxID, idxX, idxY, idxX != -1 && idxY != -1
}

// ParseCSV reads either a long-format curve table (id,x,y) or a wide grid
// table whose header holds column keys and whose first column names rows.
// A header with no usable records gives an empty dataset of that kind.
func ParseCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Data{}, err
	}
	if len(recs) == 0 {
		return Data{}, ErrEmptyDataset
	}
	if idxID, idxX, idxY, ok := curveColumns(recs[0]); ok {
		return Data{Kind: KindCurves, Curves: curvesFromRecords(recs[1:], idxID, idxX, idxY)}, nil
	}
	g, err := gridFromRecords(recs)
	if err != nil {
		return Data{}, err
	}
	return Data{Kind: KindGrid, Grid: g}, nil
}

func curvesFromRecords(recs [][]string, idxID, idxX, idxY int) Curves {
	var c Curves
	index := map[string]int{}
	for _, row := range recs {
		if idxX >= len(row) || idxY >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil || !isFinite(x) || !isFinite(y) {
			continue
		}
		id := "series"
		if idxID != -1 && idxID < len(row) && strings.TrimSpace(row[idxID]) != "" {
			id = strings.TrimSpace(row[idxID])
		}
		i, ok := index[id]
		if !ok {
			i = len(c.Series)
			index[id] = i
			c.Series = append(c.Series, Series{ID: id})
		}
		c.Series[i].Points = append(c.Series[i].Points, Point{X: x, Y: y})
	}
	return c
}

// gridFromRecords builds a grid from a header of column keys. The first
// header cell labels the row-name column and is otherwise ignored.
func gridFromRecords(recs [][]string) (Grid, error) {
	header := recs[0]
	if len(header) < 2 {
		return Grid{}, errors.New("csv: grid needs a row-name column and at least one value column")
	}
	keys := header[1:]
	var g Grid
	for _, rec := range recs[1:] {
		if len(rec) == 0 {
			continue
		}
		row := Row{Name: strings.TrimSpace(rec[0])}
		row.Cells = make([]Cell, 0, len(keys))
		for i, key := range keys {
			cell := Cell{X: strings.TrimSpace(key)}
			if i+1 < len(rec) {
				cell.Y = parseValue(rec[i+1])
			}
			row.Cells = append(row.Cells, cell)
		}
		g.Rows = append(g.Rows, row)
	}
	return g, nil
}

// parseValue returns nil for blanks and anything that is not a finite number.
func parseValue(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return nil
	}
	return &v
}
