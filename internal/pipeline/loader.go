package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ghpulse/ghpulse/internal/store"
	"github.com/ghpulse/ghpulse/pkg/models"
	"github.com/samber/lo"
)

// DefaultBatchSize bounds the number of rows per load transaction.
const DefaultBatchSize = 10000

var ErrNoRows = errors.New("no rows to load")

// LoadResult reports how much of a load call was committed. On a chunk
// failure it reflects the chunks already committed, which stay committed.
type LoadResult struct {
	Chunks        int
	RowsCommitted int
}

// Loader partitions a normalized dataset into fixed-size chunks and
// upserts them sequentially. Each chunk is one atomic store transaction;
// the call as a whole is not atomic, so a mid-run failure leaves prior
// chunks committed and reports the committed row count.
type Loader struct {
	store     store.Store
	batchSize int
}

func NewLoader(s store.Store, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{store: s, batchSize: batchSize}
}

// Load upserts rows in order. Empty input fails immediately without
// touching the store.
func (l *Loader) Load(ctx context.Context, rows []models.Event) (LoadResult, error) {
	var res LoadResult
	if len(rows) == 0 {
		return res, ErrNoRows
	}

	chunks := lo.Chunk(rows, l.batchSize)
	for i, chunk := range chunks {
		if err := l.store.UpsertEvents(ctx, chunk); err != nil {
			return res, fmt.Errorf("load chunk %d/%d (%d rows committed): %w",
				i+1, len(chunks), res.RowsCommitted, err)
		}
		res.Chunks++
		res.RowsCommitted += len(chunk)
		slog.Debug("chunk committed",
			"chunk", i+1,
			"chunks", len(chunks),
			"rows_committed", res.RowsCommitted,
		)
	}

	return res, nil
}
