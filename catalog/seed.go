package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/calder-systems/fieldcraft/core"
)

// The seed deck is compiled into the binary so the library works with no
// database and no network. One JSON file per card, loaded in file-name
// order, which fixes the catalog order deterministically.
//
//go:embed seed/*.json
var seedFS embed.FS

// Embedded builds the catalog of built-in cards.
func Embedded() (*Catalog, error) {
	entries, err := fs.ReadDir(seedFS, "seed")
	if err != nil {
		return nil, fmt.Errorf("catalog: read seed dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	cards := make([]core.Card, 0, len(names))
	for _, name := range names {
		data, err := seedFS.ReadFile("seed/" + name)
		if err != nil {
			return nil, fmt.Errorf("catalog: read seed card %s: %w", name, err)
		}
		card, err := core.ParseCard(data)
		if err != nil {
			return nil, fmt.Errorf("catalog: seed card %s: %w", name, err)
		}
		cards = append(cards, *card)
	}

	return New(cards)
}
