// Stats command for the tabula CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabula-app/tabula/pkg/types"
)

// clickStats summarizes the click log for display.
type clickStats struct {
	TotalClicks int               `json:"totalClicks"`
	ByHour      [24]int           `json:"byHour"`
	ByWeekday   [7]int            `json:"byWeekday"`
	LastClicks  []types.LastClick `json:"lastClicks"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show click-history statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, _, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "stats:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		clicks, err := backend.Clicks()
		if err != nil {
			fmt.Fprintln(os.Stderr, "stats:", err)
			os.Exit(exitSysError)
		}

		events, err := clicks.GetAll()
		if err != nil {
			fmt.Fprintln(os.Stderr, "stats:", err)
			os.Exit(exitSysError)
		}
		last, err := clicks.LastClicks()
		if err != nil {
			fmt.Fprintln(os.Stderr, "stats:", err)
			os.Exit(exitSysError)
		}

		stats := clickStats{TotalClicks: len(events), LastClicks: last}
		for _, e := range events {
			if e.Hour >= 0 && e.Hour < 24 {
				stats.ByHour[e.Hour]++
			}
			if e.Weekday >= 0 && e.Weekday < 7 {
				stats.ByWeekday[e.Weekday]++
			}
		}

		if flagJSON {
			return printJSON(stats)
		}

		fmt.Println("Total clicks:", stats.TotalClicks)
		fmt.Println("Distinct URLs clicked:", len(stats.LastClicks))
		for i, lc := range stats.LastClicks {
			if i >= 10 {
				fmt.Printf("  ... and %d more\n", len(stats.LastClicks)-10)
				break
			}
			fmt.Printf("  %s  last clicked %s\n", lc.UrlID, lc.LastClicked.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}
