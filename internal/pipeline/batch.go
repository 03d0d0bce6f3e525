package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/incident-data-etl/internal/domain"
)

// RowNormalizer converts one row's fields into a record or a rejection.
type RowNormalizer interface {
	Normalize(f domain.Fields) domain.Outcome
}

// Rejection identifies a dropped row by its zero-based data row index.
type Rejection struct {
	Row    int
	Reason domain.RejectReason
}

// Result is the output of processing one sheet.
type Result struct {
	Records    []domain.Record
	RowsRead   int
	Rejected   map[domain.RejectReason]int
	Rejections []Rejection
	Filters    domain.FilterOptions
	Analytics  domain.Analytics
}

// Process normalizes every row of sheet using up to workers goroutines.
// Accepted records keep input order. An empty or fully rejected sheet is a
// valid result; the only errors are context cancellation and a panicking row.
func Process(ctx context.Context, sheet domain.Sheet, n RowNormalizer, workers int) (Result, error) {
	if workers < 1 {
		workers = 1
	}
	schema := domain.NewSchema(sheet.Header)
	outcomes := make([]domain.Outcome, len(sheet.Rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, row := range sheet.Rows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("normalize row %d: panic: %v", i, r)
				}
			}()
			outcomes[i] = n.Normalize(schema.Fields(row))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{
		Records:  make([]domain.Record, 0, len(outcomes)),
		RowsRead: len(outcomes),
		Rejected: make(map[domain.RejectReason]int),
	}
	for i, o := range outcomes {
		if o.Accepted() {
			res.Records = append(res.Records, o.Record)
			continue
		}
		res.Rejected[o.Reason]++
		res.Rejections = append(res.Rejections, Rejection{Row: i, Reason: o.Reason})
	}
	res.Filters, res.Analytics = domain.Summarize(res.Records)
	return res, nil
}
