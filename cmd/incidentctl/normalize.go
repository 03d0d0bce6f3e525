package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/incident-data-etl/internal/adapter/sheet"
	"github.com/couchcryptid/incident-data-etl/internal/domain"
	"github.com/couchcryptid/incident-data-etl/internal/gazetteer"
	"github.com/couchcryptid/incident-data-etl/internal/pipeline"
)

func loadGazetteer(cmd *cobra.Command) (*gazetteer.Gazetteer, error) {
	path, _ := cmd.Flags().GetString("gazetteer")
	if path == "" {
		return gazetteer.Default(), nil
	}
	return gazetteer.LoadFile(path)
}

func createNormalizeCmd() *cobra.Command {
	var (
		out     string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "normalize [export.csv]",
		Short: "Normalize a downloaded sheet export into a snapshot JSON",
		Long: `Reads a CSV export (banner line, header, data rows), runs the same
normalization as the service and writes the resulting snapshot as JSON.
Reads stdin when no file is given. A summary goes to stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGazetteer(cmd)
			if err != nil {
				return err
			}

			in := io.Reader(os.Stdin)
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			s, err := sheet.Decode(in)
			if err != nil {
				return err
			}
			if len(s.Rows) > 0 && !domain.NewSchema(s.Header).HasCoordinates() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: header %q has no coordinate columns\n", s.Header)
			}

			res, err := pipeline.Process(cmd.Context(), s, domain.NewNormalizer(g, nil), workers)
			if err != nil {
				return err
			}

			snap := pipeline.NewSnapshot(uuid.New(), time.Now().UTC(), res)
			if err := writeSnapshot(out, snap); err != nil {
				return err
			}
			printSummary(cmd.ErrOrStderr(), res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; stdout if empty")
	cmd.Flags().IntVar(&workers, "workers", 4, "normalization goroutines")
	return cmd
}

func writeSnapshot(path string, snap *pipeline.Snapshot) error {
	w := io.Writer(os.Stdout)
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func printSummary(w io.Writer, res pipeline.Result) {
	fmt.Fprintf(w, "rows read:  %d\n", res.RowsRead)
	fmt.Fprintf(w, "accepted:   %d\n", len(res.Records))

	reasons := make([]string, 0, len(res.Rejected))
	for r := range res.Rejected {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Fprintf(w, "rejected (%s): %d\n", r, res.Rejected[domain.RejectReason(r)])
	}

	fmt.Fprintln(w, "top stations:")
	for _, sc := range res.Analytics.TopStations {
		fmt.Fprintf(w, "  %-28s %d\n", sc.Station, sc.Count)
	}
}
