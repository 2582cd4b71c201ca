// Import command for the tabula CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tabula-app/tabula/internal/transfer"
	"github.com/tabula-app/tabula/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot-file>",
	Short: "Import a snapshot into the store",
	Long: `Import the entities of a previously-exported snapshot. Every imported
record gets a fresh identity; references between records in the same
snapshot are remapped accordingly. Readonly records are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "import:", err)
			os.Exit(exitUserError)
		}

		var snap types.Snapshot
		switch filepath.Ext(args[0]) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &snap)
		default:
			err = json.Unmarshal(data, &snap)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "import: parse snapshot:", err)
			os.Exit(exitUserError)
		}

		backend, _, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "import:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		report, err := transfer.New(backend, newLogger()).Import(&snap)
		if err != nil {
			fmt.Fprintln(os.Stderr, "import:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(report)
		}

		fmt.Printf("Imported %d records, skipped %d readonly\n", report.Created, report.Skipped)
		for _, e := range report.Errors {
			fmt.Printf("  error: %s %q: %s\n", e.Collection, e.Name, e.Reason)
		}
		if len(report.Errors) > 0 {
			os.Exit(exitUserError)
		}
		return nil
	},
}
