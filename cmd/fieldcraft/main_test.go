package main

import (
	"io"
	"os"
	"testing"

	"github.com/calder-systems/fieldcraft/answer"
	"github.com/calder-systems/fieldcraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newApp().Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		require.NoError(t, newApp().Run([]string{"test", "-l", "DEBUG"}))
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("default is info", func(t *testing.T) {
		require.NoError(t, newApp().Run([]string{"test"}))
	})
}

func newAskApp() *cli.App {
	return &cli.App{
		Name: "fieldcraft",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db"},
			&cli.StringFlag{Name: "ai-host", Value: "http://localhost:11434/v1"},
			&cli.StringFlag{Name: "generator-model", Value: "qwen2.5:3b"},
			&cli.StringFlag{Name: "embedding-model", Value: "embeddinggemma"},
		},
		Commands: []*cli.Command{
			{
				Name:   "ask",
				Action: askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}},
					&cli.IntFlag{Name: "top", Value: 3},
					&cli.BoolFlag{Name: "semantic"},
					&cli.BoolFlag{Name: "no-ai"},
				},
			},
		},
	}
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	runErr := fn()
	require.NoError(t, w.Close())
	os.Stdout = orig

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), runErr
}

func TestAskCommand_NoMatchesPrintsFixedResponse(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return newAskApp().Run([]string{"fieldcraft", "ask", "zzzqqqxyzzy"})
	})
	require.NoError(t, err)
	assert.Contains(t, out, answer.NoMatchText)
}

func TestFilterAndLimit(t *testing.T) {
	results := []core.MatchResult{
		{Card: core.Card{ID: "fire-top", Category: core.CategoryFire}, Score: 5},
		{Card: core.Card{ID: "water-mid", Category: core.CategoryWater}, Score: 3},
		{Card: core.Card{ID: "water-low", Category: core.CategoryWater}, Score: 1},
	}

	t.Run("category filter applies before the limit", func(t *testing.T) {
		got, err := filterAndLimit(results, "water", 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "water-mid", got[0].Card.ID)
	})

	t.Run("limit alone truncates", func(t *testing.T) {
		got, err := filterAndLimit(results, "", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "fire-top", got[0].Card.ID)
	})

	t.Run("unknown category errors", func(t *testing.T) {
		_, err := filterAndLimit(results, "plasma", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidCategory)
	})
}

func TestEmbedCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "fieldcraft",
		Commands: []*cli.Command{
			{
				Name:   "embed",
				Action: embedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "batch-size", Value: 16},
					&cli.IntFlag{Name: "max-retries", Value: 3},
					&cli.DurationFlag{Name: "retry-delay"},
					&cli.BoolFlag{Name: "force"},
				},
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db"},
			&cli.StringFlag{Name: "ai-host", Value: "http://localhost:11434/v1"},
			&cli.StringFlag{Name: "generator-model", Value: "qwen2.5:3b"},
			&cli.StringFlag{Name: "embedding-model", Value: "embeddinggemma"},
		},
	}

	t.Run("batch-size must be positive", func(t *testing.T) {
		err := app.Run([]string{"fieldcraft", "embed", "--batch-size", "0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch-size")
	})
}
