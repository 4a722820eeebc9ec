// Package seriesfile loads water-level time series from CSV files, optionally
// gzip- or zstd-compressed.
//
// The first row is a header naming at least a time and a value column:
//
//	time,value,masked
//	2024-04-26 06:00,0.412,
//	2024-04-26 06:06,,
//
// Times are RFC 3339 or CO-OPS "YYYY-MM-DD HH:MM" (UTC). An empty or "NaN"
// value is a missing sample. The optional masked column accepts anything
// strconv.ParseBool does.
package seriesfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/couchcryptid/storm-surge-verify/internal/domain"
)

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02 15:04:05"}

// Load reads the series at path, decompressing by extension (.gz, .zst).
func Load(path string) (domain.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series %s: %w", path, err)
	}
	defer f.Close()

	r, closeFn, err := decompressor(path, f)
	if err != nil {
		return nil, fmt.Errorf("open series %s: %w", path, err)
	}
	defer closeFn()

	s, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("read series %s: %w", path, err)
	}
	return s, nil
}

func decompressor(path string, r io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, func() { _ = zr.Close() }, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return zr, zr.Close, nil
	default:
		return r, func() {}, nil
	}
}

// Read parses CSV rows from r into a series in file order.
func Read(r io.Reader) (domain.Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.Comment = '#'

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Series{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := columns(header)
	if err != nil {
		return nil, err
	}

	var s domain.Series
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sample, err := cols.sample(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		s = append(s, sample)
	}
	return s, nil
}

type columnIndex struct {
	time, value, masked int
}

func columns(header []string) (columnIndex, error) {
	idx := columnIndex{time: -1, value: -1, masked: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "time", "t", "date time":
			idx.time = i
		case "value", "v", "water level", "zeta":
			idx.value = i
		case "masked", "mask":
			idx.masked = i
		}
	}
	if idx.time < 0 || idx.value < 0 {
		return idx, fmt.Errorf("header %q: need time and value columns", strings.Join(header, ","))
	}
	return idx, nil
}

func (c columnIndex) sample(rec []string) (domain.Sample, error) {
	if len(rec) <= c.time || len(rec) <= c.value {
		return domain.Sample{}, fmt.Errorf("want at least %d fields, got %d", max(c.time, c.value)+1, len(rec))
	}
	ts, err := parseTime(rec[c.time])
	if err != nil {
		return domain.Sample{}, err
	}

	sample := domain.MissingSample(ts)
	if raw := strings.TrimSpace(rec[c.value]); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Sample{}, fmt.Errorf("parse value %q: %w", raw, err)
		}
		if !math.IsNaN(v) {
			sample.Value = v
		}
	}

	if c.masked >= 0 && c.masked < len(rec) {
		if raw := strings.TrimSpace(rec[c.masked]); raw != "" {
			m, err := strconv.ParseBool(raw)
			if err != nil {
				return domain.Sample{}, fmt.Errorf("parse masked %q: %w", raw, err)
			}
			sample.Masked = m
		}
	}
	return sample, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse time %q: unsupported layout", raw)
}
