package cmd

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/fotokiosk/kiosk/internal/config"
	"github.com/fotokiosk/kiosk/internal/db"
	"github.com/fotokiosk/kiosk/internal/dispatch"
	"github.com/fotokiosk/kiosk/internal/formats"
	"github.com/fotokiosk/kiosk/internal/render"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <order-id>",
	Short: "Render and deliver an order into the hot-folder tree",
	Long: `Dispatch renders every photo of the given order with its saved edits
and writes the print files into the per-format hot folders. Running it on
an already-dispatched order is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runDispatch,
}

func init() {
	rootCmd.AddCommand(dispatchCmd)
}

func runDispatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return err
	}

	registry, err := formats.Load()
	if err != nil {
		return err
	}

	renderer := render.New()
	renderer.SmartOrientation = cfg.Render.SmartOrientation

	var bar *progressbar.ProgressBar
	dispatcher := &dispatch.Dispatcher{
		DB:            database,
		Registry:      registry,
		Renderer:      renderer,
		PrintBasePath: cfg.Paths.PrintBase,
		TempUploadDir: cfg.Paths.TempUploads,
		RenderTimeout: time.Duration(cfg.Render.TimeoutSeconds) * time.Second,
		OnProgress: func(p dispatch.Progress) {
			if bar == nil {
				bar = progressbar.Default(int64(p.Total), "rendering")
			}
			_ = bar.Set(p.Current)
		},
	}

	result, err := dispatcher.Dispatch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if result.AlreadyDispatched {
		fmt.Printf("Order %s was already dispatched, nothing to do\n", result.OrderID)
		return nil
	}

	fmt.Printf("Order %s dispatched: %d file(s) written\n", result.OrderID, result.FilesWritten)
	if result.Fallbacks > 0 {
		fmt.Printf("  %d photo(s) delivered as raw copies (render failed)\n", result.Fallbacks)
	}
	if result.MissingSources > 0 {
		fmt.Printf("  %d photo(s) skipped: source file missing\n", result.MissingSources)
	}
	if result.FailedPhotos > 0 {
		fmt.Printf("  %d photo(s) could not be delivered\n", result.FailedPhotos)
	}
	if result.SkippedItems > 0 {
		fmt.Printf("  %d item(s) skipped: unknown format\n", result.SkippedItems)
	}
	return nil
}
