package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"bloomcore/internal/app"
	"bloomcore/internal/config"
	"bloomcore/internal/domain"
	"bloomcore/internal/logging"
	"bloomcore/internal/usecase"
)

var version = "dev"

func main() {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bloomcore",
		Short:         "Explain flower bloom patterns from search signals and vegetation data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newExplainCmd())
	root.AddCommand(newRegionsCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newExplainCmd() *cobra.Command {
	var (
		region string
		flower string
		ndvi   float64
		date   string
		mock   bool
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Generate a bloom explanation for a flower in a region",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := buildApp()

			req := usecase.Request{
				Region: region,
				Flower: flower,
				Date:   date,
			}
			if cmd.Flags().Changed("ndvi") {
				req.VegetationScore = &ndvi
			}
			if mock {
				req.Mode = domain.SearchModeMock
			}

			resp, err := application.Explain(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "geographic region, e.g. \"Kashmir Valley\"")
	cmd.Flags().StringVar(&flower, "flower", "", "flower common name, e.g. tulip")
	cmd.Flags().Float64Var(&ndvi, "ndvi", 0.7, "vegetation index score in [0, 1]")
	cmd.Flags().StringVar(&date, "date", "", "observation date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&mock, "mock", false, "use deterministic mock search results")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("flower")

	return cmd
}

func newRegionsCmd() *cobra.Command {
	var (
		country string
		flower  string
	)

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Rank regions within a country by flower abundance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application := buildApp()

			result, err := application.TopRegions(cmd.Context(), country, flower)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "country to search within, e.g. India")
	cmd.Flags().StringVar(&flower, "flower", "", "flower common name, e.g. lotus")
	_ = cmd.MarkFlagRequired("country")
	_ = cmd.MarkFlagRequired("flower")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bloomcore version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("bloomcore", version)
		},
	}
}

func buildApp() *app.Application {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	return app.New(cfg, logger, prometheus.DefaultRegisterer)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
