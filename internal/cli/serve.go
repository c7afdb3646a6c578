package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Zereker/tourguide"
	"github.com/Zereker/tourguide/itinerary"
)

func (a *app) serveCmd() *cobra.Command {
	var (
		stops    []string
		editable bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the tour-guide on all interfaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("stops") {
				a.cfg.Stops = stops
			}
			if cmd.Flags().Changed("editable") {
				a.cfg.Editable = editable
			}
			route, err := a.cfg.Route()
			if err != nil {
				return err
			}

			state := itinerary.NewState(route...)
			guide := itinerary.Guide{Editable: a.cfg.Editable}
			a.logger.Info("tour-guide ready", "port", a.cfg.Port, "stops", len(route), "editable", guide.Editable)

			err = tourguide.ListenAndServe(cmd.Context(), a.cfg.Port, state, guide, a.cfg.Options(a.logger)...)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringSliceVar(&stops, "stops", nil, "ordered itinerary, e.g. home,church,woods")
	cmd.Flags().BoolVar(&editable, "editable", false, "let travellers put, delete and move stops")
	return cmd
}
