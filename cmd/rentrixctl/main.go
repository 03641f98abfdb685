package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rentrix_backend/internals/configs"
)

func main() {
	configs.LoadEnv()
	configs.InitLogger()

	rootCmd := &cobra.Command{
		Use:   "rentrixctl",
		Short: "Rentrix operator tool",
	}

	rootCmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		createLandlordCmd(),
		reconcileCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
