package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-surge-verify/internal/domain"
)

func newCycleCmd() *cobra.Command {
	var (
		at    string
		delay time.Duration
	)
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Print the latest published forecast cycle as YYYYMMDD tHHz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := domain.CurrentCycleFor(delay)
			if at != "" {
				now, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("parse --at: %w", err)
				}
				c = domain.LatestCycle(now, delay)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), c.String())
			return err
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "evaluate at this RFC 3339 instant instead of now")
	cmd.Flags().DurationVar(&delay, "delay", domain.DefaultPublicationDelay, "publication delay after the nominal cycle hour")
	return cmd
}
