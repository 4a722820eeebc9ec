package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/storm-surge-verify/internal/domain"
)

func newVerifyCmd() *cobra.Command {
	var (
		manifestPath string
		asJSON       bool
		concurrency  int
		delay        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify model series against observations for every station in a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := loadManifest(manifestPath)
			if err != nil {
				return err
			}
			results, err := verifyManifest(m, delay, concurrency)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSONLines(cmd.OutOrStdout(), results)
			}
			return writeTable(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "stations.yaml", "station manifest (YAML)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON result per line")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "stations verified in parallel")
	cmd.Flags().DurationVar(&delay, "delay", domain.DefaultPublicationDelay, "publication delay used when the manifest names no cycle")
	return cmd
}

// verifyManifest verifies every station, keeping manifest order. A station
// whose files cannot be read aborts the run; a station without overlap is
// reported as unavailable.
func verifyManifest(m *manifest, delay time.Duration, concurrency int) ([]domain.VerificationResult, error) {
	cycle, err := m.cycle()
	if err != nil {
		return nil, err
	}
	opts, err := m.options(delay)
	if err != nil {
		return nil, err
	}

	results := make([]domain.VerificationResult, len(m.Stations))
	var g errgroup.Group
	g.SetLimit(max(concurrency, 1))
	for i, st := range m.Stations {
		g.Go(func() error {
			pair, err := m.load(st, cycle)
			if err != nil {
				return fmt.Errorf("station %s: %w", st.ID, err)
			}
			res, err := domain.Verify(pair, opts)
			if err != nil {
				return err
			}
			if !res.Available {
				slog.Warn("verification unavailable", "station_id", st.ID, "reason", res.Reason)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeTable(w io.Writer, results []domain.VerificationResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATION\tCYCLE\tN\tRMSD\tPEAK_ERR\tLAG_MIN\tLABEL")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s %s\t%d\t%s\t%s\t%s\t%s\n",
			r.Station.ID, r.CycleDate, r.Cycle, r.SampleCount,
			formatMetric(r.RMSD, 3), formatMetric(r.PeakError, 3), formatMetric(r.PeakLagMinutes, 0),
			r.Label)
	}
	return tw.Flush()
}

func formatMetric(v *float64, prec int) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}

func writeJSONLines(w io.Writer, results []domain.VerificationResult) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode result %s: %w", r.ID, err)
		}
	}
	return nil
}
