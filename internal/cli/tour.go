package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Zereker/tourguide"
)

// visit is the outcome of one traveller's exchange.
type visit struct {
	resp    tourguide.Response
	elapsed time.Duration
}

func (a *app) tourCmd() *cobra.Command {
	var (
		travellers  int
		concurrency int
		request     []string
	)

	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Send many concurrent travellers to the tour-guide",
		Long: `tour starts the given number of travellers, each opening its own connection
and asking one question, and prints every answer with its round-trip time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if travellers <= 0 {
				return errors.Errorf("--travellers must be positive, got %d", travellers)
			}
			req, err := parseRequest(request)
			if err != nil {
				return err
			}

			client := tourguide.NewClient(a.cfg.Address, a.cfg.Port, a.cfg.Options(a.logger)...)
			visits, err := runTour(cmd.Context(), client, req, travellers, concurrency)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, v := range visits {
				if _, err := fmt.Fprintf(w, "traveller %d: %s (%s)\n", i, v.resp, v.elapsed.Round(time.Microsecond)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&travellers, "travellers", "n", 100, "number of travellers")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 10, "travellers in flight at once, 0 for no limit")
	cmd.Flags().StringSliceVarP(&request, "request", "r", []string{"next"}, "request each traveller sends, e.g. next or put,cafe")
	return cmd
}

func runTour(ctx context.Context, client *tourguide.Client, req tourguide.Request, travellers, concurrency int) ([]visit, error) {
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	visits := make([]visit, travellers)
	for i := range visits {
		i := i
		g.Go(func() error {
			start := time.Now()
			resp, err := client.Ask(ctx, req)
			if err != nil {
				return errors.Wrapf(err, "traveller %d", i)
			}
			visits[i] = visit{resp: resp, elapsed: time.Since(start)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return visits, nil
}
