package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-surge-verify/internal/domain"
)

func newPairsCmd() *cobra.Command {
	var manifestPath string
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Convert manifest station files into station pair messages (JSON lines)",
		Long: `Reads every station of a manifest and prints one station pair message per
line, in the format the verifier consumes from its source topic. Useful for
seeding a topic or building test fixtures.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := loadManifest(manifestPath)
			if err != nil {
				return err
			}
			return writePairs(cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "stations.yaml", "station manifest (YAML)")
	return cmd
}

func writePairs(w io.Writer, m *manifest) error {
	if _, err := m.cycle(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for _, st := range m.Stations {
		// Raw coordinates and title are passed through; the verifier normalizes them.
		pair, err := m.load(st, nil)
		if err != nil {
			return fmt.Errorf("station %s: %w", st.ID, err)
		}
		title := st.ModelTitle
		if title == "" {
			title = m.ModelTitle
		}
		rec := domain.StationPairRecord{
			StationID:   st.ID,
			StationName: st.Name,
			Lon:         st.Lon,
			Lat:         st.Lat,
			ModelTitle:  title,
			CycleDate:   m.CycleDate,
			Cycle:       m.Cycle,
			StepMinutes: m.StepMinutes,
			Observed:    sampleRecords(pair.Observed),
			Model:       sampleRecords(pair.Model),
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode station %s: %w", st.ID, err)
		}
	}
	return nil
}

func sampleRecords(s domain.Series) []domain.SampleRecord {
	recs := make([]domain.SampleRecord, len(s))
	for i, smp := range s {
		recs[i] = domain.SampleRecord{Time: smp.Time, Masked: smp.Masked}
		if !math.IsNaN(smp.Value) && !math.IsInf(smp.Value, 0) {
			v := smp.Value
			recs[i].Value = &v
		}
	}
	return recs
}
