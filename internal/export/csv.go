package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/MohamedB94/scrapper-hellowork/internal/domain"
)

// CSVSink writes the batch to a delimited file with a header row.
type CSVSink struct {
	Path string
}

func (s *CSVSink) Name() string { return "csv" }

func (s *CSVSink) Write(ctx context.Context, records []domain.JobListing) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("csv create: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, j := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Write(Row(j)); err != nil {
			return fmt.Errorf("csv row %s: %w", j.URL, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	return nil
}
