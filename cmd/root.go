package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kiosk",
	Short: "Self-service photo printing kiosk backend",
	Long: `Kiosk is the backend of a self-service photo printing station.
It serves the point-of-sale web UI, renders print-ready files from
customer photos and their edits, and delivers them into the hot-folder
tree watched by the printer driver.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
