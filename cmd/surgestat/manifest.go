package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/storm-surge-verify/internal/adapter/seriesfile"
	"github.com/couchcryptid/storm-surge-verify/internal/domain"
)

// manifest lists the station files of one verification run. Relative paths
// resolve against the manifest's directory.
type manifest struct {
	CycleDate   string          `yaml:"cycle_date"`
	Cycle       string          `yaml:"cycle"`
	StepMinutes int             `yaml:"step_minutes"`
	Extent      string          `yaml:"extent"`
	ModelTitle  string          `yaml:"model_title"`
	Stations    []manifestEntry `yaml:"stations"`

	dir string
}

type manifestEntry struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Lon        float64 `yaml:"lon"`
	Lat        float64 `yaml:"lat"`
	ModelTitle string  `yaml:"model_title"`
	Observed   string  `yaml:"observed"`
	Model      string  `yaml:"model"`
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Stations) == 0 {
		return nil, fmt.Errorf("manifest %s: no stations", path)
	}
	for i, st := range m.Stations {
		if strings.TrimSpace(st.ID) == "" {
			return nil, fmt.Errorf("manifest %s: station %d: id is required", path, i+1)
		}
		if st.Observed == "" || st.Model == "" {
			return nil, fmt.Errorf("manifest %s: station %s: observed and model files are required", path, st.ID)
		}
	}
	m.dir = filepath.Dir(path)
	return &m, nil
}

// cycle returns the manifest's forecast cycle, or nil when it names none.
func (m *manifest) cycle() (*domain.CycleRecord, error) {
	if m.CycleDate == "" && m.Cycle == "" {
		return nil, nil
	}
	if m.CycleDate == "" || m.Cycle == "" {
		return nil, errors.New("manifest: cycle_date and cycle must be set together")
	}
	d, err := time.Parse("20060102", m.CycleDate)
	if err != nil {
		return nil, fmt.Errorf("manifest: cycle_date %q: %w", m.CycleDate, err)
	}
	c, err := domain.ParseCycle(m.Cycle)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &domain.CycleRecord{Cycle: c, BaseDate: d.UTC()}, nil
}

// options overlays the manifest's step and extent on the defaults.
func (m *manifest) options(delay time.Duration) (domain.Options, error) {
	opts := domain.DefaultOptions()
	opts.PublicationDelay = delay
	if m.StepMinutes != 0 {
		opts.StepMinutes = m.StepMinutes
	}
	ext, err := domain.ParseExtent(m.Extent)
	if err != nil {
		return domain.Options{}, fmt.Errorf("manifest: %w", err)
	}
	opts.Extent = ext
	return opts, nil
}

func (m *manifest) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, p)
}

// load reads both series of one station.
func (m *manifest) load(st manifestEntry, cycle *domain.CycleRecord) (domain.StationPair, error) {
	observed, err := seriesfile.Load(m.resolve(st.Observed))
	if err != nil {
		return domain.StationPair{}, err
	}
	model, err := seriesfile.Load(m.resolve(st.Model))
	if err != nil {
		return domain.StationPair{}, err
	}

	title := st.ModelTitle
	if title == "" {
		title = m.ModelTitle
	}
	lon, lat, version := domain.NormalizeCoordinates(title, st.Lon, st.Lat)

	return domain.StationPair{
		Station: domain.Station{
			ID:           st.ID,
			Name:         st.Name,
			Lon:          lon,
			Lat:          lat,
			ModelVersion: version,
		},
		Cycle:    cycle,
		Observed: observed,
		Model:    model,
	}, nil
}
