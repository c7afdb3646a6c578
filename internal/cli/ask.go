package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Zereker/tourguide"
)

func (a *app) askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <list|current|next|put LOC|del LOC|mov LOC POS>",
		Short: "Ask the tour-guide one question",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequest(args)
			if err != nil {
				return err
			}

			client := tourguide.NewClient(a.cfg.Address, a.cfg.Port, a.cfg.Options(a.logger)...)
			resp, err := client.Ask(cmd.Context(), req)
			if err != nil {
				return err
			}

			out, err := a.formatter.Format(resp)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

// parseRequest turns command arguments such as ["mov", "cafe", "2"] into a
// request.
func parseRequest(args []string) (tourguide.Request, error) {
	if len(args) == 0 {
		return tourguide.Request{}, errors.New("missing request")
	}

	verb := strings.ToLower(args[0])
	rest := args[1:]
	var want int
	switch verb {
	case "list", "current", "next":
		want = 0
	case "put", "del":
		want = 1
	case "mov":
		want = 2
	default:
		return tourguide.Request{}, errors.Errorf("unknown request %q", args[0])
	}
	if len(rest) != want {
		return tourguide.Request{}, errors.Errorf("%s takes %d argument(s), got %d", verb, want, len(rest))
	}

	switch verb {
	case "list":
		return tourguide.NewRequest(tourguide.ReqList), nil
	case "current":
		return tourguide.NewRequest(tourguide.ReqCurrent), nil
	case "next":
		return tourguide.NewRequest(tourguide.ReqNext), nil
	}

	loc, err := tourguide.ParseLocation(rest[0])
	if err != nil {
		return tourguide.Request{}, err
	}
	switch verb {
	case "put":
		return tourguide.PutRequest(loc), nil
	case "del":
		return tourguide.DelRequest(loc), nil
	default:
		pos, err := strconv.ParseUint(rest[1], 10, 32)
		if err != nil {
			return tourguide.Request{}, errors.Wrapf(err, "invalid position %q", rest[1])
		}
		return tourguide.MovRequest(loc, uint32(pos)), nil
	}
}
