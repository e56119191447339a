package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "careflow-api",
		Short: "CareFlow clinic API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(addAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
