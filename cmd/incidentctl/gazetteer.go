package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/incident-data-etl/internal/domain"
	"github.com/couchcryptid/incident-data-etl/internal/gazetteer"
)

func createResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Show how raw station names resolve",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGazetteer(cmd)
			if err != nil {
				return err
			}
			r := domain.NewResolver(g)
			w := cmd.OutOrStdout()
			for _, raw := range args {
				res := r.Resolve(raw)
				sub, ok := g.Subdivision(res.Name)
				if !ok {
					sub = "-"
				}
				fmt.Fprintf(w, "%q -> %q method=%s score=%.0f subdivision=%s\n", raw, res.Name, res.Method, res.Score, sub)
			}
			return nil
		},
	}
}

func createGazetteerCmd() *cobra.Command {
	gazCmd := &cobra.Command{
		Use:   "gazetteer",
		Short: "Inspect gazetteer files",
	}
	gazCmd.AddCommand(createGazetteerCheckCmd())
	gazCmd.AddCommand(createGazetteerExportCmd())
	return gazCmd
}

func createGazetteerCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a gazetteer file and its station matching",
		Long: `Loads the file (or the built-in table) and verifies that every
canonical station resolves to itself and every alias to its target.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gazetteer.Default()
			if len(args) == 1 {
				var err error
				if g, err = gazetteer.LoadFile(args[0]); err != nil {
					return err
				}
			}
			return checkGazetteer(cmd.OutOrStdout(), g)
		},
	}
}

// checkGazetteer reports canonical stations that do not resolve to themselves
// and aliases that do not resolve to their target.
func checkGazetteer(w io.Writer, g *gazetteer.Gazetteer) error {
	r := domain.NewResolver(g)
	var problems int

	for _, st := range g.Stations() {
		if res := r.Resolve(st.Name); res.Name != st.Name {
			fmt.Fprintf(w, "station %q resolves to %q (%s)\n", st.Name, res.Name, res.Method)
			problems++
		}
	}
	for key, target := range g.Aliases() {
		if res := r.Resolve(key); res.Name != target {
			fmt.Fprintf(w, "alias %q resolves to %q (%s), want %q\n", key, res.Name, res.Method, target)
			problems++
		}
	}

	fmt.Fprintf(w, "%d stations, %d aliases, %d categories, %d subdivisions\n",
		len(g.Stations()), len(g.Aliases()), len(g.Categories()), len(g.SubdivisionNames()))
	if problems > 0 {
		return fmt.Errorf("%d gazetteer problems", problems)
	}
	return nil
}

func createGazetteerExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active gazetteer as toml, yaml or json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := loadGazetteer(cmd)
			if err != nil {
				return err
			}
			return exportGazetteer(cmd.OutOrStdout(), g, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "output format: toml, yaml or json")
	return cmd
}

func exportGazetteer(w io.Writer, g *gazetteer.Gazetteer, format string) error {
	f := g.Export()
	switch format {
	case "toml":
		return toml.NewEncoder(w).Encode(f)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(f)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	default:
		return errors.New("format must be toml, yaml or json")
	}
}
