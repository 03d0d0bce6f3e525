// Command incidentctl runs the normalization pipeline offline and inspects
// gazetteer files.
//
// Usage:
//
//	go run ./cmd/incidentctl normalize export.csv --out snapshot.json
//	go run ./cmd/incidentctl resolve "tut/north" "kovilpati east"
//	go run ./cmd/incidentctl gazetteer check stations.toml
//	go run ./cmd/incidentctl gazetteer export --format yaml > stations.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "incidentctl",
		Short:         "Offline tools for the incident ETL",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("gazetteer", "", "gazetteer override file (.toml, .yaml, .json); built-in table if empty")

	rootCmd.AddCommand(createNormalizeCmd())
	rootCmd.AddCommand(createResolveCmd())
	rootCmd.AddCommand(createGazetteerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
