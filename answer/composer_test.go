package answer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/calder-systems/fieldcraft/ai"
	"github.com/calder-systems/fieldcraft/ai/mock"
	"github.com/calder-systems/fieldcraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResults() []core.MatchResult {
	return []core.MatchResult{
		{
			Card: core.Card{
				ID:       "water-boil",
				Title:    "Purify Water",
				Category: core.CategoryWater,
				Brief:    "Boiling kills pathogens.",
				Steps:    []string{"Bring to a rolling boil.", "Hold for one minute."},
				Warnings: []string{"Boiling does not remove chemical contamination"},
				Source:   "WHO guidance",
			},
			Score: 5.0,
		},
		{
			Card: core.Card{
				ID:       "water-still",
				Title:    "Build a Solar Still",
				Category: core.CategoryWater,
				Steps:    []string{"Dig a pit."},
				Warnings: []string{"Yield is low; do not rely on a still alone"},
				Source:   "WHO guidance",
			},
			Score: 2.0,
		},
	}
}

func TestNewComposer(t *testing.T) {
	t.Run("nil generator", func(t *testing.T) {
		_, err := NewComposer(nil)
		assert.Equal(t, ErrGeneratorRequired, err)
	})

	t.Run("defaults", func(t *testing.T) {
		c, err := NewComposer(mock.NewMockGenerator())
		require.NoError(t, err)
		assert.Equal(t, defaultTopCards, c.topCards)
		assert.True(t, c.enabled)
	})
}

func TestCompose_EmptyResults(t *testing.T) {
	generator := mock.NewMockGenerator()
	c, err := NewComposer(generator)
	require.NoError(t, err)

	ans, err := c.Compose(context.Background(), "how do I fly", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, NoMatchText, ans.Text)
	assert.False(t, ans.Cancelled)
	assert.Empty(t, ans.Warnings)
	// The generator must never run on an empty result set.
	assert.Equal(t, 0, generator.CallCount())
}

func TestCompose_StreamsFragments(t *testing.T) {
	generator := mock.NewMockGenerator()
	c, err := NewComposer(generator)
	require.NoError(t, err)

	var fragments []string
	ans, err := c.Compose(context.Background(), "how do I purify water", testResults(),
		func(_ context.Context, chunk []byte) error {
			fragments = append(fragments, string(chunk))
			return nil
		})

	require.NoError(t, err)
	assert.False(t, ans.Cancelled)
	assert.NotEmpty(t, fragments)
	assert.Equal(t, ans.Text, strings.Join(fragments, ""))
}

func TestCompose_CarriesWarningsAndSources(t *testing.T) {
	c, err := NewComposer(mock.NewMockGenerator())
	require.NoError(t, err)

	ans, err := c.Compose(context.Background(), "water", testResults(), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Boiling does not remove chemical contamination",
		"Yield is low; do not rely on a still alone",
	}, ans.Warnings)
	// Shared source appears once.
	assert.Equal(t, []string{"WHO guidance"}, ans.Sources)
}

func TestCompose_TopCardsLimit(t *testing.T) {
	c, err := NewComposer(mock.NewMockGenerator(), WithTopCards(1))
	require.NoError(t, err)

	ans, err := c.Compose(context.Background(), "water", testResults(), nil)

	require.NoError(t, err)
	// Only the top-ranked card grounds the answer.
	assert.Equal(t, []string{"Boiling does not remove chemical contamination"}, ans.Warnings)
}

func TestCompose_PromptContainsCardText(t *testing.T) {
	generator := mock.NewMockGenerator()
	c, err := NewComposer(generator)
	require.NoError(t, err)

	_, err = c.Compose(context.Background(), "how do I purify water", testResults(), nil)
	require.NoError(t, err)

	prompt := generator.LastPrompt()
	assert.Contains(t, prompt, "how do I purify water")
	assert.Contains(t, prompt, "Purify Water")
	assert.Contains(t, prompt, "Bring to a rolling boil.")
	assert.Contains(t, prompt, "WARNING: Boiling does not remove chemical contamination")
}

func TestCompose_Cancellation(t *testing.T) {
	generator := mock.NewMockGenerator()
	c, err := NewComposer(generator)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fragments int
	ans, err := c.Compose(ctx, "water", testResults(),
		func(_ context.Context, _ []byte) error {
			fragments++
			if fragments == 2 {
				cancel()
			}
			return nil
		})

	// Cancellation is not an error; the partial text comes back flagged.
	require.NoError(t, err)
	assert.True(t, ans.Cancelled)
	assert.NotEmpty(t, ans.Text)
	// Warnings survive even a cancelled generation.
	assert.NotEmpty(t, ans.Warnings)
}

func TestCompose_NewQuestionCancelsPrevious(t *testing.T) {
	generator := mock.NewMockGenerator()

	var mu sync.Mutex
	calls := 0
	firstStarted := make(chan struct{})
	generator.GenerateFunc = func(ctx context.Context, _ string, _ ai.StreamFunc) (string, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()

		if first {
			close(firstStarted)
			<-ctx.Done()
			return "partial answer", ctx.Err()
		}
		return "second answer", nil
	}

	c, err := NewComposer(generator)
	require.NoError(t, err)

	type result struct {
		ans *Answer
		err error
	}
	firstDone := make(chan result, 1)
	go func() {
		ans, err := c.Compose(context.Background(), "first", testResults(), nil)
		firstDone <- result{ans, err}
	}()

	select {
	case <-firstStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("first generation never started")
	}

	ans, err := c.Compose(context.Background(), "second", testResults(), nil)
	require.NoError(t, err)
	assert.Equal(t, "second answer", ans.Text)
	assert.False(t, ans.Cancelled)

	select {
	case r := <-firstDone:
		require.NoError(t, r.err)
		assert.True(t, r.ans.Cancelled)
		assert.Equal(t, "partial answer", r.ans.Text)
	case <-time.After(5 * time.Second):
		t.Fatal("first compose never returned")
	}
}

func TestComposer_Cancel(t *testing.T) {
	t.Run("aborts in-flight generation", func(t *testing.T) {
		generator := mock.NewMockGenerator()
		started := make(chan struct{})
		generator.GenerateFunc = func(ctx context.Context, _ string, _ ai.StreamFunc) (string, error) {
			close(started)
			<-ctx.Done()
			return "partial", ctx.Err()
		}

		c, err := NewComposer(generator)
		require.NoError(t, err)

		type result struct {
			ans *Answer
			err error
		}
		done := make(chan result, 1)
		go func() {
			ans, err := c.Compose(context.Background(), "water", testResults(), nil)
			done <- result{ans, err}
		}()

		select {
		case <-started:
		case <-time.After(5 * time.Second):
			t.Fatal("generation never started")
		}

		c.Cancel()

		select {
		case r := <-done:
			require.NoError(t, r.err)
			assert.True(t, r.ans.Cancelled)
			assert.Equal(t, "partial", r.ans.Text)
		case <-time.After(5 * time.Second):
			t.Fatal("compose never returned after cancel")
		}
	})

	t.Run("no-op when idle", func(t *testing.T) {
		c, err := NewComposer(mock.NewMockGenerator())
		require.NoError(t, err)

		c.Cancel() // must not block or panic
	})
}

func TestCompose_GenerationDisabled(t *testing.T) {
	generator := mock.NewMockGenerator()
	c, err := NewComposer(generator, WithGenerationDisabled())
	require.NoError(t, err)

	_, err = c.Compose(context.Background(), "water", testResults(), nil)

	assert.ErrorIs(t, err, ErrGenerationDisabled)
	assert.Equal(t, 0, generator.CallCount())
}

func TestCompose_GeneratorFailure(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(_ context.Context, _ string, _ ai.StreamFunc) (string, error) {
		return "", errors.New("connection refused")
	}

	c, err := NewComposer(generator)
	require.NoError(t, err)

	_, err = c.Compose(context.Background(), "water", testResults(), nil)

	assert.ErrorIs(t, err, ErrGenerationUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}
