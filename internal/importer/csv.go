// Package importer parses job batches from external sources into
// model.Job values. Grounded on the ancestor's
// internal/integrations.CarrierAdapter and its csvsftp.CsvSftpAdapter
// placeholder, trimmed to the two methods the service actually calls
// and given a real encoding/csv body instead of a stub.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vrpls/internal/model"
)

// Adapter is the trimmed carrier-adapter shape: a named source that
// can be asked to fetch jobs.
type Adapter interface {
	Name() string
	FetchJobs(r io.Reader) ([]Record, error)
}

// Record pairs a parsed job with the coordinates the CSV carried,
// since model.Job itself only holds a Location index into a matrix —
// the caller assigns that index once coordinates are merged with the
// fleet's own points.
type Record struct {
	Job      model.Job
	Lat, Lng float64
}

// CSVAdapter reads job batches from CSV with the header:
//
//	id,lat,lng,amount,skills,serviceSec,windowEarliest,windowLatest
//
// amount is a semicolon-separated vector (e.g. "10;2"); skills is a
// semicolon-separated list; windowEarliest/windowLatest may both be
// empty for an unconstrained job. Location indices are not part of
// the CSV: the caller (api.buildInput-equivalent) assigns matrix slots
// once jobs are merged with the fleet's coordinates.
type CSVAdapter struct{}

func (CSVAdapter) Name() string { return "csv" }

func (CSVAdapter) FetchJobs(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("importer: reading header: %w", err)
	}
	col, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: reading row: %w", err)
		}
		rec, err := parseRow(row, col)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

type columns struct {
	id, lat, lng, amount, skills, serviceSec, winEarliest, winLatest int
}

func columnIndex(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}
	get := func(name string) (int, error) {
		i, ok := idx[name]
		if !ok {
			return 0, fmt.Errorf("importer: missing required column %q", name)
		}
		return i, nil
	}
	var c columns
	var err error
	if c.id, err = get("id"); err != nil {
		return c, err
	}
	if c.lat, err = get("lat"); err != nil {
		return c, err
	}
	if c.lng, err = get("lng"); err != nil {
		return c, err
	}
	if c.amount, err = get("amount"); err != nil {
		return c, err
	}
	c.skills, c.serviceSec, c.winEarliest, c.winLatest = -1, -1, -1, -1
	if i, ok := idx["skills"]; ok {
		c.skills = i
	}
	if i, ok := idx["servicesec"]; ok {
		c.serviceSec = i
	}
	if i, ok := idx["windowearliest"]; ok {
		c.winEarliest = i
	}
	if i, ok := idx["windowlatest"]; ok {
		c.winLatest = i
	}
	return c, nil
}

func parseRow(rec []string, col columns) (Record, error) {
	id, err := strconv.Atoi(strings.TrimSpace(rec[col.id]))
	if err != nil {
		return Record{}, fmt.Errorf("importer: bad id %q: %w", rec[col.id], err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(rec[col.lat]), 64)
	if err != nil {
		return Record{}, fmt.Errorf("importer: job %d: bad lat %q: %w", id, rec[col.lat], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(rec[col.lng]), 64)
	if err != nil {
		return Record{}, fmt.Errorf("importer: job %d: bad lng %q: %w", id, rec[col.lng], err)
	}
	amount, err := parseVector(rec[col.amount])
	if err != nil {
		return Record{}, fmt.Errorf("importer: job %d: bad amount %q: %w", id, rec[col.amount], err)
	}

	// Location is a placeholder; the caller assigns the real matrix
	// index once coordinates are merged with the fleet's own points.
	j := model.Job{ID: id, Amount: amount, Location: -1}

	if col.skills >= 0 && strings.TrimSpace(rec[col.skills]) != "" {
		for _, s := range strings.Split(rec[col.skills], ";") {
			if s = strings.TrimSpace(s); s != "" {
				j.Skills = append(j.Skills, s)
			}
		}
	}
	if col.serviceSec >= 0 && strings.TrimSpace(rec[col.serviceSec]) != "" {
		sec, err := strconv.ParseInt(strings.TrimSpace(rec[col.serviceSec]), 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("importer: job %d: bad serviceSec %q: %w", id, rec[col.serviceSec], err)
		}
		j.ServiceSec = sec
	}
	if col.winEarliest >= 0 && col.winLatest >= 0 &&
		strings.TrimSpace(rec[col.winEarliest]) != "" && strings.TrimSpace(rec[col.winLatest]) != "" {
		e, err := strconv.ParseInt(strings.TrimSpace(rec[col.winEarliest]), 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("importer: job %d: bad windowEarliest %q: %w", id, rec[col.winEarliest], err)
		}
		l, err := strconv.ParseInt(strings.TrimSpace(rec[col.winLatest]), 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("importer: job %d: bad windowLatest %q: %w", id, rec[col.winLatest], err)
		}
		j.TimeWindows = []model.TimeWindow{{Earliest: e, Latest: l}}
	}
	return Record{Job: j, Lat: lat, Lng: lng}, nil
}

func parseVector(s string) (model.Amount, error) {
	parts := strings.Split(s, ";")
	out := make(model.Amount, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
