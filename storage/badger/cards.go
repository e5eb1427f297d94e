package badger

import (
	"context"
	"slices"

	"github.com/calder-systems/fieldcraft/core"
	"github.com/calder-systems/fieldcraft/storage"
	"github.com/dgraph-io/badger/v4"
)

// CardRepository implements storage.CardRepository for BadgerDB.
type CardRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.CardRepository = (*CardRepository)(nil)

// NewCardRepository creates a new CardRepository.
func NewCardRepository(backend *Backend) (*CardRepository, error) {
	seq, err := backend.GetSequence(cardSeqName)
	if err != nil {
		return nil, err
	}

	return &CardRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the sequence.
func (r *CardRepository) Close() error {
	return r.seq.Release()
}

// FindSimilar delegates to the backend.
func (r *CardRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *CardRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddCards adds one or more cards to storage.
func (r *CardRepository) AddCards(ctx context.Context, cards ...*core.Card) ([]*core.Card, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, card := range cards {
			key := makeCardKey(card.ID)

			// Reject duplicate IDs
			existing, err := r.readCard(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				return storage.ErrDuplicateKey
			}

			// Assign the insertion sequence number
			nextSeq, err := r.seq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextSeq == 0 {
				nextSeq, err = r.seq.Next()
				if err != nil {
					return err
				}
			}
			card.Seq = nextSeq

			// Store primary record
			if err := tx.Set(key, storage.MarshalCard(card)); err != nil {
				return err
			}

			// Update order index
			if err := tx.Set(makeOrderKey(card.Seq), []byte(card.ID)); err != nil {
				return err
			}

			// Update category index
			if err := tx.Set(makeCategoryKey(card.Category, card.Seq), []byte(card.ID)); err != nil {
				return err
			}

			// Update checksum index
			if err := tx.Set(makeChecksumKey(core.ChecksumCard(card)), []byte(card.ID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return cards, err
}

// UpdateCards updates existing cards.
func (r *CardRepository) UpdateCards(ctx context.Context, cards ...*core.Card) ([]*core.Card, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, card := range cards {
			key := makeCardKey(card.ID)

			// Read old card to detect changes
			old, err := r.readCard(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Updates never reorder the catalog
			card.Seq = old.Seq

			// Store updated card
			if err := tx.Set(key, storage.MarshalCard(card)); err != nil {
				return err
			}

			// Update category index if the category changed
			if old.Category != card.Category {
				if err := tx.Delete(makeCategoryKey(old.Category, old.Seq)); err != nil {
					return err
				}
				if err := tx.Set(makeCategoryKey(card.Category, card.Seq), []byte(card.ID)); err != nil {
					return err
				}
			}

			// Update checksum index if the content changed
			oldSum := core.ChecksumCard(old)
			newSum := core.ChecksumCard(card)
			if oldSum != newSum {
				if err := tx.Delete(makeChecksumKey(oldSum)); err != nil {
					return err
				}
				if err := tx.Set(makeChecksumKey(newSum), []byte(card.ID)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return cards, err
}

// DeleteCards removes cards by their IDs.
func (r *CardRepository) DeleteCards(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeCardKey(id)

			// Read card to get metadata for index cleanup
			card, err := r.readCard(tx, key)
			if err != nil {
				return err
			}
			if card == nil {
				return storage.ErrNotFound
			}

			// Delete from order index
			if err := tx.Delete(makeOrderKey(card.Seq)); err != nil {
				return err
			}

			// Delete from category index
			if err := tx.Delete(makeCategoryKey(card.Category, card.Seq)); err != nil {
				return err
			}

			// Delete from checksum index
			if err := tx.Delete(makeChecksumKey(core.ChecksumCard(card))); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetCard retrieves a single card by ID.
func (r *CardRepository) GetCard(ctx context.Context, id string) (*core.Card, error) {
	var result *core.Card
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readCard(tx, makeCardKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetCards retrieves multiple cards by their IDs.
func (r *CardRepository) GetCards(ctx context.Context, ids ...string) ([]*core.Card, error) {
	var result []*core.Card
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			card, err := r.readCard(tx, makeCardKey(id))
			if err != nil {
				return err
			}
			if card != nil {
				result = append(result, card)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListCards retrieves all cards in insertion order.
func (r *CardRepository) ListCards(ctx context.Context) ([]*core.Card, error) {
	var results []*core.Card
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(cardOrderPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			// Read the card ID from the index
			var id string
			if err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			// Look up the full card
			card, err := r.readCard(tx, makeCardKey(id))
			if err != nil {
				return err
			}
			if card != nil {
				results = append(results, card)
			}
		}
		return nil
	}, false)

	return results, err
}

// ListByCategory retrieves all cards in a category, in insertion order.
func (r *CardRepository) ListByCategory(ctx context.Context, category core.Category) ([]*core.Card, error) {
	var results []*core.Card
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialCategoryKey(category)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our category prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the card ID from the index
			var id string
			if err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			// Look up the full card
			card, err := r.readCard(tx, makeCardKey(id))
			if err != nil {
				return err
			}
			if card != nil {
				results = append(results, card)
			}
		}
		return nil
	}, false)

	return results, err
}

// HasChecksum reports whether a card with the given content checksum exists.
func (r *CardRepository) HasChecksum(ctx context.Context, checksum core.ID) (bool, error) {
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeChecksumKey(checksum))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// Count returns the number of stored cards.
func (r *CardRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(cardOrderPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readCard reads a card from the transaction.
// Returns nil without error when the key is absent.
func (r *CardRepository) readCard(tx *badger.Txn, key []byte) (*core.Card, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var card *core.Card
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		card, unmarshalErr = storage.UnmarshalCard(val)
		return unmarshalErr
	})
	return card, err
}
