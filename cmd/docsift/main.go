// Copyright 2025 Docsift Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/docsift/docsift"
	"github.com/docsift/docsift/ai"
	"github.com/docsift/docsift/analyze"
	"github.com/docsift/docsift/core"
	"github.com/docsift/docsift/crossref"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docsift",
		Usage: "Relevance ranking over design documentation sections",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "index",
				Usage:     "Ingest sections from a JSON file and build their embeddings",
				ArgsUsage: "<sections.json>",
				Action:    indexCommand,
				Flags: append(embeddingFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Rank stored sections against a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(embeddingFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "platform",
						Usage: "Filter by platform (iOS, macOS, watchOS, tvOS, visionOS, universal)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Filter by category (components, navigation, layout, ...)",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
				),
			},
			{
				Name:      "analyze",
				Usage:     "Show the structured analysis of a query",
				ArgsUsage: "<query>",
				Action:    analyzeCommand,
			},
			{
				Name:      "match",
				Usage:     "Match stored section titles against a glob pattern",
				ArgsUsage: "<pattern>",
				Action:    matchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:      "crossref",
				Usage:     "Map a design concept to candidate technical symbols",
				ArgsUsage: "<design-title>",
				Action:    crossrefCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "symbol",
						Usage: "Technical symbol to cross-reference",
					},
					&cli.StringSliceFlag{
						Name:  "platform",
						Usage: "Platform hints (repeatable)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func embeddingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.IntFlag{
			Name:  "embedding-rpm",
			Usage: "Maximum embedding requests per minute",
			Value: 300,
		},
		&cli.DurationFlag{
			Name:  "load-timeout",
			Usage: "Timeout for bringing the embedding provider up",
			Value: 10 * time.Second,
		},
	}
}

// sectionDoc is the JSON shape accepted by the index command.
type sectionDoc struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Platform   string   `json:"platform"`
	Category   string   `json:"category"`
	Content    string   `json:"content"`
	Structured *struct {
		Overview       string   `json:"overview"`
		Guidelines     []string `json:"guidelines"`
		Examples       []string `json:"examples"`
		Specifications string   `json:"specifications"`
	} `json:"structured,omitempty"`
	Quality *struct {
		Score             float32 `json:"score"`
		Confidence        float32 `json:"confidence"`
		IsFallbackContent bool    `json:"is_fallback_content"`
	} `json:"quality,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

func (d *sectionDoc) toSection() (*core.Section, error) {
	section := &core.Section{
		Title:       d.Title,
		URL:         d.URL,
		Content:     d.Content,
		LastUpdated: d.LastUpdated,
	}

	if d.Platform != "" {
		platform, err := core.ParsePlatform(d.Platform)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", d.Title, err)
		}
		section.Platform = platform
	}
	if d.Category != "" {
		category, err := core.ParseCategory(d.Category)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", d.Title, err)
		}
		section.Category = category
	}
	if d.Structured != nil {
		section.Structured = &core.StructuredContent{
			Overview:       d.Structured.Overview,
			Guidelines:     d.Structured.Guidelines,
			Examples:       d.Structured.Examples,
			Specifications: d.Structured.Specifications,
		}
	}
	if d.Quality != nil {
		section.Quality = &core.QualityMetrics{
			Score:             d.Quality.Score,
			Confidence:        d.Quality.Confidence,
			IsFallbackContent: d.Quality.IsFallbackContent,
		}
	}
	return section, nil
}

func parseFilters(c *cli.Context) (core.Filters, error) {
	var filters core.Filters

	if name := c.String("platform"); name != "" {
		platform, err := core.ParsePlatform(name)
		if err != nil {
			return filters, fmt.Errorf("invalid platform filter %q: %w", name, err)
		}
		filters.Platform = platform
	}
	if name := c.String("category"); name != "" {
		category, err := core.ParseCategory(name)
		if err != nil {
			return filters, fmt.Errorf("invalid category filter %q: %w", name, err)
		}
		filters.Category = category
	}
	return filters, nil
}

func openEngine(c *cli.Context) (*docsift.Engine, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
		ai.WithRequestsPerMinute(c.Int("embedding-rpm")),
		ai.WithLoadTimeout(c.Duration("load-timeout")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid embedding configuration: %w", err)
	}
	return docsift.NewEngine(c.String("db"), docsift.WithAIConfig(config))
}

func indexCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one sections file argument")
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read sections file: %w", err)
	}

	var docs []*sectionDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("failed to parse sections file: %w", err)
	}

	sections := make([]*core.Section, 0, len(docs))
	for _, doc := range docs {
		section, err := doc.toSection()
		if err != nil {
			return err
		}
		sections = append(sections, section)
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	ctx := context.Background()
	if err := engine.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "embedding provider unavailable, indexing degraded: %v\n", err)
	}

	if err := engine.IndexSections(ctx, sections...); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d sections\n", len(sections))
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one query argument")
	}
	query := c.Args().First()

	filters, err := parseFilters(c)
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	ctx := context.Background()
	if err := engine.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "embedding provider unavailable, searching degraded: %v\n", err)
	}

	results, err := engine.SearchStored(ctx, query, filters, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%2d. %-40s %8.4f  %s\n", i+1, result.Title, result.CombinedScore, result.Platform)
		fmt.Printf("    sem=%.3f kw=%.3f struct=%.3f ctx=%.3f", result.SemanticScore,
			result.KeywordScore, result.StructureScore, result.ContextualScore)
		if result.Degraded {
			fmt.Print("  [degraded]")
		}
		fmt.Println()
		if result.Snippet != "" {
			fmt.Printf("    %s\n", result.Snippet)
		}
	}
	return nil
}

func analyzeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one query argument")
	}

	analyzer, err := analyze.NewAnalyzer()
	if err != nil {
		return fmt.Errorf("failed to build analyzer: %w", err)
	}

	analyzed, err := analyzer.Analyze(c.Args().First(), core.Filters{})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Printf("Query:     %s\n", analyzed.OriginalQuery)
	fmt.Printf("Intent:    %s\n", analyzed.Intent)
	fmt.Printf("Keywords:  %s\n", strings.Join(analyzed.Keywords, ", "))
	fmt.Printf("Concepts:  %s\n", strings.Join(analyzed.Concepts, ", "))
	if analyzed.Platform != core.PlatformUnknown {
		fmt.Printf("Platform:  %s\n", analyzed.Platform)
	}
	if analyzed.Category != core.CategoryUnknown {
		fmt.Printf("Category:  %s\n", analyzed.Category)
	}
	for _, entity := range analyzed.Entities {
		fmt.Printf("Entity:    %-20s type=%s confidence=%.2f -> %s\n",
			entity.Text, entity.Type, entity.Confidence, entity.NormalizedValue)
	}
	return nil
}

func matchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one pattern argument")
	}

	engine, err := docsift.NewEngine(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	ctx := context.Background()
	sections, err := engine.Sections().ListSections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sections: %w", err)
	}

	matches, err := engine.MatchWildcard(sections, c.Args().First(), []string{"title"})
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	for _, match := range matches {
		fmt.Printf("%-40s %6.2f\n", match.Item.Title, match.Match.Score)
	}
	return nil
}

func crossrefCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one design title argument")
	}

	mapper, err := crossref.NewMapper()
	if err != nil {
		return fmt.Errorf("failed to build mapper: %w", err)
	}

	refs := mapper.FindCrossReferences(c.Args().First(), c.String("symbol"), c.StringSlice("platform")...)

	if len(refs) == 0 {
		fmt.Println("No cross-references.")
		return nil
	}

	for _, ref := range refs {
		fmt.Printf("%-28s %5.2f  %-17s %s\n", ref.TechnicalSymbol, ref.Confidence,
			ref.MappingType, strings.Join(ref.Platforms, ","))
		fmt.Printf("    %s\n", ref.UsageNote)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
