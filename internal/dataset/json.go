package dataset

import (
	"encoding/json"
	"errors"
)

// ParseJSON decodes a grid document ({"rows": [...]}) or a curve document
// ({"series": [...]}). A bare array is read as series. A document with no
// rows or points decodes to an empty dataset of its kind.
func ParseJSON(b []byte) (Data, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		var series []Series
		if err2 := json.Unmarshal(b, &series); err2 != nil {
			return Data{}, err
		}
		return curvesData(series)
	}
	switch {
	case raw["rows"] != nil:
		var g Grid
		if err := json.Unmarshal(b, &g); err != nil {
			return Data{}, err
		}
		return Data{Kind: KindGrid, Grid: g}, nil
	case raw["series"] != nil:
		var c Curves
		if err := json.Unmarshal(b, &c); err != nil {
			return Data{}, err
		}
		return curvesData(c.Series)
	}
	return Data{}, errors.Join(ErrUnsupportedFormat, errors.New(`json: expected "rows" or "series"`))
}

func curvesData(series []Series) (Data, error) {
	c := Curves{Series: make([]Series, 0, len(series))}
	for _, s := range series {
		pts := make([]Point, 0, len(s.Points))
		for _, p := range s.Points {
			if isFinite(p.X) && isFinite(p.Y) {
				pts = append(pts, p)
			}
		}
		c.Series = append(c.Series, Series{ID: s.ID, Points: pts})
	}
	return Data{Kind: KindCurves, Curves: c}, nil
}
