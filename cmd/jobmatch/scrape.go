package main

import (
	"fmt"
	"os"

	"github.com/jonathan/jobmatch/internal/config"
	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/ingest"
	"github.com/spf13/cobra"
)

var (
	scrapeQuery    string
	scrapeLocation string
	scrapeLimit    int
	scrapeSources  []string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch and store job postings from job boards",
	Long:  `Fetch postings matching a query from the configured job boards, deduplicate them, and store new ones in the database.`,
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeQuery, "query", "q", "", "Search query (required)")
	scrapeCmd.Flags().StringVarP(&scrapeLocation, "location", "l", "", "Location filter")
	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "Maximum postings per source")
	scrapeCmd.Flags().StringSliceVar(&scrapeSources, "source", nil, "Source to scrape (repeatable; default all)")

	_ = scrapeCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	sources, err := buildSources(cfg)
	if err != nil {
		return err
	}
	if len(scrapeSources) > 0 {
		sources, err = filterSources(sources, scrapeSources)
		if err != nil {
			return err
		}
	}

	fetched, err := ingest.FetchAll(ctx, sources, scrapeQuery, scrapeLocation, scrapeLimit)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	ingestor := ingest.New(database)
	var found, saved int
	for name, postings := range fetched {
		result, err := ingestor.Ingest(ctx, name, postings)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		fmt.Fprintf(os.Stdout, "%s: found %d, saved %d\n", name, result.Found, result.Saved)
		found += result.Found
		saved += result.Saved
	}

	fmt.Fprintf(os.Stdout, "Total: found %d, saved %d\n", found, saved)
	return nil
}

// buildSources assembles the configured fetch sources
func buildSources(cfg *config.Config) ([]ingest.Source, error) {
	var sources []ingest.Source
	for _, name := range ingest.APISourceNames {
		src, err := ingest.SourceByName(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	boards, err := cfg.LoadBoards()
	if err != nil {
		return nil, err
	}
	for _, board := range boards {
		src, err := ingest.NewBoardSource(board)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	return sources, nil
}

// filterSources keeps only the named sources
func filterSources(sources []ingest.Source, names []string) ([]ingest.Source, error) {
	byName := make(map[string]ingest.Source, len(sources))
	for _, src := range sources {
		byName[src.Name()] = src
	}

	var selected []ingest.Source
	for _, name := range names {
		src, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown source: %q", name)
		}
		selected = append(selected, src)
	}
	return selected, nil
}
