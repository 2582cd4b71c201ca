// Export command for the tabula CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tabula-app/tabula/internal/logger"
	"github.com/tabula-app/tabula/internal/transfer"
	"github.com/tabula-app/tabula/pkg/types"
)

var (
	flagExportProfile string
	flagExportOutput  string
	flagExportFormat  string
)

func init() {
	exportCmd.Flags().StringVar(&flagExportProfile, "profile", "", "export only the entities reachable from this profile ID")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "write the snapshot to this file instead of stdout")
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "json", "snapshot format: json or yaml")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the store as a snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, _, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		svc := transfer.New(backend, logger.Nop())

		var snap *types.Snapshot
		if flagExportProfile != "" {
			snap, err = svc.ExportByProfile(flagExportProfile)
		} else {
			snap, err = svc.ExportAll()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitUserError)
		}

		data, err := marshalSnapshot(snap, flagExportFormat)
		if err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitUserError)
		}

		if flagExportOutput == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(flagExportOutput, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}
		fmt.Println("Exported to", flagExportOutput)
		return nil
	},
}

func marshalSnapshot(snap *types.Snapshot, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(snap, "", "  ")
	case "yaml":
		return yaml.Marshal(snap)
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
