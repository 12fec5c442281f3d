package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	appLogger "github.com/FACorreiaa/go-trip-planner/app/logger"
	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/container"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type generateFlags struct {
	city           string
	budget         float64
	days           int
	travelers      int
	interests      []string
	accommodation  string
	transportation string
	offline        bool
	seed           uint64
	verbose        bool
}

var genFlags generateFlags

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print an itinerary as JSON without starting the server",
	Long: `Generates a single itinerary and writes it to stdout.

Example:
  trip-planner generate --city Paris --budget 50000 --days 3 --interests "Food & Dining,Nightlife"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGenerate(cmd, genFlags)
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genFlags.city, "city", "", "destination city")
	f.Float64Var(&genFlags.budget, "budget", 0, "total budget in the configured currency")
	f.IntVar(&genFlags.days, "days", 3, "number of days")
	f.IntVar(&genFlags.travelers, "travelers", 1, "number of travelers")
	f.StringSliceVar(&genFlags.interests, "interests", nil, "comma separated interests")
	f.StringVar(&genFlags.accommodation, "accommodation", string(types.AccommodationHotel), "budget, hotel, luxury, apartment or camping")
	f.StringVar(&genFlags.transportation, "transportation", "", "preferred transportation")
	f.BoolVar(&genFlags.offline, "offline", false, "skip place lookups and AI summaries")
	f.Uint64Var(&genFlags.seed, "seed", 0, "seed for reproducible durations and costs")
	f.BoolVarP(&genFlags.verbose, "verbose", "v", false, "log to stderr")
	_ = generateCmd.MarkFlagRequired("city")
	_ = generateCmd.MarkFlagRequired("budget")
}

func runGenerate(cmd *cobra.Command, flags generateFlags) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}
	secrets, err := config.LoadSecrets()
	if err != nil {
		return err
	}
	if flags.offline {
		cfg.Places.Provider = "none"
		cfg.AI.Provider = "none"
	}

	logger := slog.New(slog.DiscardHandler)
	if flags.verbose {
		logger = appLogger.New(cfg.Mode, cmd.ErrOrStderr())
	}

	ctx := cmd.Context()
	c, err := container.NewContainer(ctx, &cfg, secrets, logger, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	svc := c.ItineraryService
	if flags.seed != 0 {
		opts := c.ServiceOptions
		opts.Random = itinerary.NewSeededRandom(flags.seed)
		svc = itinerary.NewServiceImpl(c.Fetcher, c.Narrator, opts, logger, nil)
	}

	doc, err := svc.GenerateItinerary(ctx, types.TripRequest{
		City:           flags.city,
		Budget:         flags.budget,
		Days:           flags.days,
		Travelers:      flags.travelers,
		Interests:      flags.interests,
		Accommodation:  types.Accommodation(strings.ToLower(flags.accommodation)),
		Transportation: flags.transportation,
	})
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), doc)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
