package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const serviceName = "trip-planner"

var rootCmd = &cobra.Command{
	Use:   "trip-planner",
	Short: "Travel itinerary synthesizer",
	Long: `Builds day-by-day travel itineraries from a city, a budget and a set of interests.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Use standard log until slog is configured, in case godotenv fails
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found or error loading:", err)
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the itinerary HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
