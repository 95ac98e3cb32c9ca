package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fotokiosk/kiosk/internal/formats"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the print format registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := formats.Load()
		if err != nil {
			return err
		}

		fmt.Printf("%-14s %-6s %-11s %-11s %8s  %s\n",
			"SKU", "FOLDER", "IMAGE", "CANVAS", "PRICE", "BILLING")
		for _, f := range registry.All() {
			billing := "per photo"
			if f.PerPair {
				billing = "per pair"
			}
			fmt.Printf("%-14s %-6s %4dx%-6d %4dx%-6d %7.2f€  %s\n",
				f.SKU, f.Folder,
				f.ImageWidth, f.ImageHeight,
				f.CanvasWidth, f.CanvasHeight,
				float64(f.Price)/100, billing)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
