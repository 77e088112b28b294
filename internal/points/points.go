// Package points reads the village CSV into marker records.
package points

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
)

// Required CSV columns, matched case-insensitively.
const (
	ColumnLon     = "lon"
	ColumnLat     = "lat"
	ColumnFeddans = "feddans"
	ColumnPlace   = "place"
)

var ErrMissingColumn = errors.New("csv: required column not found")

// Record is one village marker.
type Record struct {
	Place      string  `json:"place"`
	FeddansRaw string  `json:"-"` // as written in the file, shown in the tooltip
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
	Feddans    float64 `json:"feddans"`
}

// Point returns the record location.
func (r Record) Point() orb.Point { return orb.Point{r.Lon, r.Lat} }

// Skipped describes a row that could not be turned into a record.
type Skipped struct {
	Reason string
	Line   int
}

// Result holds the parsed records in file order and the rows that were skipped.
type Result struct {
	Records []Record
	Skipped []Skipped
}

// Parse reads CSV data. Malformed rows are skipped and reported, a missing
// required column or unreadable CSV is an error.
func Parse(data []byte) (Result, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return Result{}, fmt.Errorf("%w: empty csv", ErrMissingColumn)
	}
	if err != nil {
		return Result{}, err
	}

	idx, err := columns(header)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, err
		}
		line, _ := r.FieldPos(0)

		rec, reason := parseRow(row, idx)
		if reason != "" {
			res.Skipped = append(res.Skipped, Skipped{Line: line, Reason: reason})
			log.Warn().
				Int("line", line).
				Str("reason", reason).
				Msg("Skipping malformed point record")
			continue
		}
		res.Records = append(res.Records, rec)
	}

	return res, nil
}

type columnIndex struct {
	lon, lat, feddans, place int
}

func columns(header []string) (columnIndex, error) {
	idx := columnIndex{-1, -1, -1, -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case ColumnLon:
			if idx.lon == -1 {
				idx.lon = i
			}
		case ColumnLat:
			if idx.lat == -1 {
				idx.lat = i
			}
		case ColumnFeddans:
			if idx.feddans == -1 {
				idx.feddans = i
			}
		case ColumnPlace:
			if idx.place == -1 {
				idx.place = i
			}
		}
	}

	var missing []string
	if idx.lon == -1 {
		missing = append(missing, ColumnLon)
	}
	if idx.lat == -1 {
		missing = append(missing, ColumnLat)
	}
	if idx.feddans == -1 {
		missing = append(missing, ColumnFeddans)
	}
	if idx.place == -1 {
		missing = append(missing, ColumnPlace)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return idx, nil
}

func parseRow(row []string, idx columnIndex) (Record, string) {
	last := max(idx.lon, idx.lat, idx.feddans, idx.place)
	if last >= len(row) {
		return Record{}, "short row"
	}

	lon, err := parseFinite(row[idx.lon])
	if err != nil {
		return Record{}, "invalid lon"
	}
	lat, err := parseFinite(row[idx.lat])
	if err != nil {
		return Record{}, "invalid lat"
	}
	if lon < -180 || lon > 180 {
		return Record{}, "lon out of range"
	}
	if lat < -90 || lat > 90 {
		return Record{}, "lat out of range"
	}
	raw := strings.TrimSpace(row[idx.feddans])
	feddans, err := parseFinite(raw)
	if err != nil {
		return Record{}, "invalid feddans"
	}
	if feddans < 0 {
		return Record{}, "negative feddans"
	}

	return Record{
		Lon:        lon,
		Lat:        lat,
		Feddans:    feddans,
		FeddansRaw: raw,
		Place:      strings.TrimSpace(row[idx.place]),
	}, ""
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
