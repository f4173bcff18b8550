package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/najdeno/internal/model"
)

// recordStatusEvent appends a row to the status audit trail, within the
// caller's transaction so the event commits together with the status write.
func recordStatusEvent(ctx context.Context, tx *sql.Tx, itemID, from, to, changedBy string, changedAt int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO status_events (item_id, from_status, to_status, changed_by, changed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		itemID, from, to, changedBy, changedAt,
	)
	if err != nil {
		return fmt.Errorf("recording status event: %w", err)
	}
	return nil
}

// GetItemHistory returns an item's status transitions, newest first.
func GetItemHistory(ctx context.Context, db *sql.DB, itemID string) ([]model.StatusEvent, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, from_status, to_status, changed_by, changed_at
		 FROM status_events WHERE item_id = ?
		 ORDER BY changed_at DESC, id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting item history: %w", err)
	}
	defer rows.Close()

	var events []model.StatusEvent
	for rows.Next() {
		var e model.StatusEvent
		if err := rows.Scan(&e.ID, &e.ItemID, &e.FromStatus, &e.ToStatus, &e.ChangedBy, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scanning status event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
