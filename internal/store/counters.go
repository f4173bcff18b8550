package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/najdeno/internal/model"
)

// nextReferenceCode advances the per-category counter and formats the next
// reference code, within the caller's transaction. The upsert is a single
// write statement, so SQLite serializes concurrent issuers on the write lock
// and no two transactions can observe the same sequence number.
func nextReferenceCode(ctx context.Context, tx *sql.Tx, category string) (string, error) {
	var seq int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO counters (category, seq) VALUES (?, 1)
		 ON CONFLICT (category) DO UPDATE SET seq = seq + 1
		 RETURNING seq`,
		model.CounterKey(category),
	).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("advancing %s counter: %w", model.CounterKey(category), err)
	}

	// %03d pads to three digits and simply grows wider past 999.
	return fmt.Sprintf("%s-%03d", model.RefPrefix(category), seq), nil
}

// IssueReferenceCode issues the next reference code for a category in its own
// transaction. Item creation issues codes inside the item-insert transaction
// instead, so a failed create never consumes a number.
func IssueReferenceCode(ctx context.Context, db *sql.DB, category string) (string, error) {
	var code string
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		var err error
		code, err = nextReferenceCode(ctx, tx, category)
		return err
	})
	return code, err
}
