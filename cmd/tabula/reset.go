// Reset command for the tabula CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabula-app/tabula/internal/sqlite"
)

var flagResetYes bool

func init() {
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "confirm the factory reset")
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Factory-reset the store",
	Long: `Delete the persisted database, user data and click history included.
The next attach starts from an empty store and reloads the built-in
starter data.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagResetYes {
			fmt.Fprintln(os.Stderr, "reset: pass --yes to confirm deleting all data")
			os.Exit(exitUserError)
		}

		cfg, err := storeConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "reset:", err)
			os.Exit(exitSysError)
		}

		backend := sqlite.NewBackend()
		if err := backend.Attach(cfg); err != nil {
			fmt.Fprintln(os.Stderr, "reset:", err)
			os.Exit(exitSysError)
		}
		if err := backend.Destroy(); err != nil {
			fmt.Fprintln(os.Stderr, "reset:", err)
			os.Exit(exitSysError)
		}

		fmt.Println("Store reset:", cfg.DataDir)
		return nil
	},
}
