package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fotokiosk/kiosk/internal/config"
	"github.com/fotokiosk/kiosk/internal/dispatch"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired files from the temp upload directory",
	Long: `Sweep deletes temp-upload files older than the retention window,
regardless of order status. Run it from cron or a systemd timer.`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().Int("days", 0, "Override the retention window in days")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	days := mustGetInt(cmd, "days")
	if days <= 0 {
		days = cfg.Render.RetentionDays
	}

	removed, err := dispatch.Sweep(cfg.Paths.TempUploads, time.Duration(days)*24*time.Hour)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d expired upload(s) from %s\n", removed, cfg.Paths.TempUploads)
	return nil
}
