package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const layoutMonth = "2006-01"

// SyncOptions
type SyncOptions struct {
	Month string
	Force bool
	Delay time.Duration
}

func AddSyncArgs(cmd *cobra.Command, o *SyncOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Sync the files of a month instead of the current one, example: --month="2025-11".`)
	cmd.Flags().BoolVarP(&o.Force, "force", "f", false,
		"Upload even when the page looks unchanged.")
}

func AddWatchArgs(cmd *cobra.Command, o *SyncOptions) {
	cmd.Flags().DurationVar(&o.Delay, "delay", 2*time.Second,
		"Quiet period after the last change before syncing.")
}

// GetMonth returns the requested month, or now when none was given.
func (o *SyncOptions) GetMonth(now time.Time) (time.Time, error) {
	if o.Month == "" {
		return now, nil
	}
	t, err := time.ParseInLocation(layoutMonth, o.Month, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("--month %q: expected YYYY-MM", o.Month)
	}
	return t, nil
}
