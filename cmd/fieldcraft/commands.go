package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/calder-systems/fieldcraft"
	"github.com/calder-systems/fieldcraft/ai"
	"github.com/calder-systems/fieldcraft/answer"
	"github.com/calder-systems/fieldcraft/catalog"
	"github.com/calder-systems/fieldcraft/core"
	"github.com/calder-systems/fieldcraft/embedding"
	"github.com/calder-systems/fieldcraft/ingest"
	"github.com/urfave/cli/v2"
)

// openLibrary builds a Library from the global flags.
func openLibrary(c *cli.Context) (*fieldcraft.Library, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithGeneratorModel(c.String("generator-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	return fieldcraft.NewLibrary(c.String("db"), fieldcraft.WithAIConfig(aiConfig))
}

func categoriesCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	cat, err := lib.Catalog(c.Context)
	if err != nil {
		return err
	}

	for _, category := range core.Categories() {
		fmt.Printf("%-12s %d cards\n", category, len(cat.ByCategory(category)))
	}
	return nil
}

func listCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	cat, err := lib.Catalog(c.Context)
	if err != nil {
		return err
	}

	cards := cat.All()
	if name := c.Args().First(); name != "" {
		category, err := core.ParseCategory(name)
		if err != nil {
			return err
		}
		cards = cat.ByCategory(category)
	}

	for _, card := range cards {
		fmt.Printf("%-28s %-10s %s\n", card.ID, card.Category, card.Title)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("card id is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	cat, err := lib.Catalog(c.Context)
	if err != nil {
		return err
	}

	card, ok := cat.Get(id)
	if !ok {
		return fmt.Errorf("no card with id %q", id)
	}

	printCard(&card)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	searcher, err := lib.NewSearcher(c.Context)
	if err != nil {
		return err
	}

	results, err := filterAndLimit(searcher.Search(query, 0), c.String("category"), c.Int("limit"))
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println(answer.NoMatchText)
		return nil
	}

	for i, hit := range results {
		fmt.Printf("%d: %-28s [%.1f] %s\n", i+1, hit.Card.ID, hit.Score, hit.Card.Title)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("question is required")
	}

	// Ctrl-C cancels the stream instead of killing the process abruptly
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	results, err := rankCards(ctx, lib, c, question)
	if err != nil {
		return err
	}

	results, err = filterAndLimit(results, c.String("category"), 0)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println(answer.NoMatchText)
		return nil
	}

	var opts []answer.Option
	opts = append(opts, answer.WithTopCards(c.Int("top")))
	if c.Bool("no-ai") {
		opts = append(opts, answer.WithGenerationDisabled())
	}

	composer, err := lib.NewComposer(opts...)
	if err != nil {
		return err
	}

	ans, err := composer.Compose(ctx, question, results, func(_ context.Context, chunk []byte) error {
		_, werr := os.Stdout.Write(chunk)
		return werr
	})
	if err != nil {
		// No model available: fall back to showing the top card raw
		if errors.Is(err, answer.ErrGenerationUnavailable) || errors.Is(err, answer.ErrGenerationDisabled) {
			fmt.Fprintln(os.Stderr, "answer generation unavailable; showing the best matching card")
			printCard(&results[0].Card)
			return nil
		}
		return err
	}

	if ans.Cancelled {
		fmt.Println("\n[interrupted]")
	} else {
		fmt.Println()
	}

	for _, warning := range ans.Warnings {
		fmt.Printf("WARNING: %s\n", warning)
	}
	if len(ans.Sources) > 0 {
		fmt.Printf("Sources: %s\n", strings.Join(ans.Sources, "; "))
	}
	return nil
}

func importCommand(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		return fmt.Errorf("import directory is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	pipeline, err := lib.NewImportPipeline(ingest.WithPoolSize(c.Int("workers")))
	if err != nil {
		return err
	}
	defer pipeline.Release()

	report, err := pipeline.ImportDir(c.Context, dir)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d cards, skipped %d, failed %d\n",
		report.Imported, report.Skipped, report.Failed())
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "  %v\n", failure)
	}
	return nil
}

func embedCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	config := embedding.DefaultConfig()
	config.BatchSize = c.Int("batch-size")
	config.MaxRetries = c.Int("max-retries")
	config.RetryDelay = c.Duration("retry-delay")
	config.Force = c.Bool("force")

	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	return lib.NewReembedder(config, os.Stderr).Run(c.Context)
}

// rankCards picks the grounding cards for a question: embedding similarity
// when --semantic is set, otherwise keyword ranking with a semantic fallback
// for questions that share no keywords with any card.
func rankCards(ctx context.Context, lib *fieldcraft.Library, c *cli.Context, question string) ([]core.MatchResult, error) {
	if c.Bool("semantic") {
		return lib.SemanticSearch(ctx, question, 0)
	}

	searcher, err := lib.NewSearcher(ctx)
	if err != nil {
		return nil, err
	}

	results := searcher.Search(question, 0)
	if len(results) > 0 || c.Bool("no-ai") {
		return results, nil
	}

	// Keyword miss: try the stored vectors. A deck that was never embedded
	// or an unreachable embedding service just means no extra matches.
	semantic, err := lib.SemanticSearch(ctx, question, 0)
	if err != nil {
		slog.Debug("semantic fallback unavailable", "err", err)
		return results, nil
	}
	return semantic, nil
}

// filterAndLimit applies the optional category filter before truncating, so
// in-category cards ranked below the global top-N still make the cut.
func filterAndLimit(results []core.MatchResult, categoryName string, limit int) ([]core.MatchResult, error) {
	if categoryName != "" {
		category, err := core.ParseCategory(categoryName)
		if err != nil {
			return nil, err
		}
		results = catalog.FilterResults(results, category)
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// printCard renders one card in full.
func printCard(card *core.Card) {
	fmt.Printf("%s (%s, %s)\n", card.Title, card.Category, card.Difficulty)
	if card.Brief != "" {
		fmt.Println(card.Brief)
	}
	fmt.Println()
	for i, step := range card.Steps {
		fmt.Printf("  %d. %s\n", i+1, step)
	}
	if len(card.Warnings) > 0 {
		fmt.Println()
		for _, warning := range card.Warnings {
			fmt.Printf("  WARNING: %s\n", warning)
		}
	}
	if card.Source != "" {
		fmt.Printf("\nSource: %s\n", card.Source)
	}
}
