package main

import (
	"encoding/json"
	"fmt"
	"hos-log-service/internal/api/dto"
	"hos-log-service/internal/config"
	"hos-log-service/internal/domain"
	"hos-log-service/internal/geometry"
	"hos-log-service/internal/services"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// newRootCmd builds the offline log tool. Every command reads JSON in the
// same shapes the HTTP API accepts and prints the API's response JSON.
func newRootCmd() *cobra.Command {
	var layoutsPath string

	root := &cobra.Command{
		Use:          "hoslog",
		Short:        "Derive duty-status timelines and log-grid geometry from files",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&layoutsPath, "layouts", config.Get("GRID_LAYOUTS_PATH", "configs/grid_layouts.yaml"), "grid layout presets (YAML)")

	root.AddCommand(newDayCmd(), newWindowCmd(), newGridCmd(&layoutsPath))
	return root
}

func newDayCmd() *cobra.Command {
	var stopsPath, now string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Derive the single-day change-points for a stop list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var stops []dto.Stop
			if err := readJSON(cmd, stopsPath, &stops); err != nil {
				return err
			}

			domainStops, err := dto.ToStops(stops)
			if err != nil {
				return fmt.Errorf("day: %w", err)
			}
			anchor, err := dto.ParseNow(now, time.Now())
			if err != nil {
				return fmt.Errorf("day: --now: %w", err)
			}

			tl, err := services.DeriveDayTimeline(domainStops, anchor)
			if err != nil {
				return fmt.Errorf("day: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewDayTimelineResponse(tl))
		},
	}
	cmd.Flags().StringVar(&stopsPath, "stops", "", `JSON array of stops ("-" for stdin)`)
	cmd.Flags().StringVar(&now, "now", "", "RFC 3339 instant anchoring an empty stop list")
	_ = cmd.MarkFlagRequired("stops")
	return cmd
}

func newWindowCmd() *cobra.Command {
	var (
		bucketPath string
		opts       dto.WindowOptions
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Clip a day bucket of segments to its calendar day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := readWindow(cmd, bucketPath, opts)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewDayWindowResponse(w))
		},
	}
	cmd.Flags().StringVar(&bucketPath, "bucket", "", `JSON day bucket ("-" for stdin)`)
	addWindowFlags(cmd, &opts)
	_ = cmd.MarkFlagRequired("bucket")
	return cmd
}

func newGridCmd(layoutsPath *string) *cobra.Command {
	var (
		inputPath string
		surface   dto.Surface
		opts      dto.WindowOptions
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Lay out a log grid for a measured surface",
	}
	cmd.PersistentFlags().StringVar(&inputPath, "input", "", `input JSON ("-" for stdin)`)
	cmd.PersistentFlags().Float64Var(&surface.Width, "width", 0, "surface width in px")
	cmd.PersistentFlags().Float64Var(&surface.Height, "height", 0, "surface height in px")
	cmd.PersistentFlags().BoolVar(&surface.ShowHourBand, "hour-band", false, "reserve the hour label band")
	_ = cmd.MarkPersistentFlagRequired("input")

	daily := &cobra.Command{
		Use:   "daily",
		Short: "Stepped single-day grid from a change list (accepts `hoslog day` output)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in struct {
				Changes []dto.DutyChange `json:"changes"`
			}
			if err := readJSON(cmd, inputPath, &in); err != nil {
				return err
			}
			changes, err := dto.ToChanges(in.Changes)
			if err != nil {
				return fmt.Errorf("grid daily: %w", err)
			}

			layouts, err := config.LoadLayouts(*layoutsPath)
			if err != nil {
				return err
			}
			g, _, err := geometry.RemeasureDaily(nil, layouts[geometry.LayoutDaily], surface.ToDomain(), changes)
			if err != nil {
				return fmt.Errorf("grid daily: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewDailyGridResponse(g))
		},
	}

	hos := &cobra.Command{
		Use:   "hos",
		Short: "Multi-day segment grid for one day bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := readWindow(cmd, inputPath, opts)
			if err != nil {
				return err
			}

			layouts, err := config.LoadLayouts(*layoutsPath)
			if err != nil {
				return err
			}
			g, _, err := geometry.RemeasureHos(nil, layouts[geometry.LayoutHos], surface.ToDomain(), w)
			if err != nil {
				return fmt.Errorf("grid hos: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewHosGridResponse(g))
		},
	}
	addWindowFlags(hos, &opts)

	cmd.AddCommand(daily, hos)
	return cmd
}

func addWindowFlags(cmd *cobra.Command, opts *dto.WindowOptions) {
	cmd.Flags().BoolVar(&opts.IncludeLeadingOffSeed, "seed", false, "seed OFF from midnight to the first segment")
	cmd.Flags().BoolVar(&opts.FillGaps, "fill-gaps", false, "treat uncovered time as OFF")
	cmd.Flags().IntVar(&opts.ToleranceSeconds, "tolerance", 0, "connector tolerance in seconds (default 60)")
}

func readWindow(cmd *cobra.Command, path string, opts dto.WindowOptions) (w domain.DayWindow, err error) {
	var bucket dto.DayBucket
	if err := readJSON(cmd, path, &bucket); err != nil {
		return w, err
	}
	b, err := bucket.ToDomain()
	if err != nil {
		return w, fmt.Errorf("bucket: %w", err)
	}
	w, err = services.WindowDay(b, opts.ToDomain())
	if err != nil {
		return w, fmt.Errorf("bucket: %w", err)
	}
	return w, nil
}

func readJSON(cmd *cobra.Command, path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("read input %q: parse json: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
