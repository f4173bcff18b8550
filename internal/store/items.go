package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/najdeno/internal/model"
)

const itemColumns = `id, reference_code, category, title, description, location, contact,
	date, status, owner_uid, owner_email, photo_mime, created_at, updated_at`

// CreateItem sanitizes and persists a new report, issuing its reference code
// in the same transaction as the insert. The caller identity becomes the
// owner; createdAt and updatedAt start equal.
func CreateItem(ctx context.Context, db *sql.DB, in model.ItemInput, ownerUID, ownerEmail string) (*model.Item, error) {
	now := time.Now().UnixMilli()
	item := &model.Item{
		ID:          uuid.NewString(),
		Category:    in.Category,
		Title:       model.CleanText(in.Title),
		Description: model.CleanText(in.Description),
		Location:    model.CleanText(in.Location),
		Contact:     model.CleanText(in.Contact),
		Date:        model.CleanText(in.Date),
		Status:      in.Status,
		OwnerUID:    ownerUID,
		OwnerEmail:  ownerEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := withTx(ctx, db, func(tx *sql.Tx) error {
		code, err := nextReferenceCode(ctx, tx, item.Category)
		if err != nil {
			return err
		}
		item.ReferenceCode = code

		_, err = tx.ExecContext(ctx,
			`INSERT INTO items (id, reference_code, category, title, description, location,
			                    contact, date, status, owner_uid, owner_email, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.ReferenceCode, item.Category, item.Title, item.Description,
			item.Location, item.Contact, item.Date, item.Status,
			item.OwnerUID, item.OwnerEmail, item.CreatedAt, item.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("creating item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListFilter narrows ListItems results. Zero values mean "no constraint".
type ListFilter struct {
	Category string
	Status   string
	Query    string
}

// ListItems returns items matching the filter, newest date first with ties
// broken by creation time. The free-text query is a case-insensitive
// substring match over reference code, title, location and description.
func ListItems(ctx context.Context, db *sql.DB, f ListFilter) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	var args []any

	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Query != "" {
		query += ` AND instr(lower(reference_code || ' ' || title || ' ' || location || ' ' || description), lower(?)) > 0`
		args = append(args, f.Query)
	}

	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// CountItems returns the total number of stored reports.
func CountItems(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}

// UpdateItem replaces an item's mutable fields. The ownership check runs
// against a consistent read in the same transaction as the write; identity
// fields (id, category, referenceCode, owner, createdAt) are preserved.
func UpdateItem(ctx context.Context, db *sql.DB, id, callerUID string, in model.ItemInput) (*model.Item, error) {
	var item *model.Item
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		existing, err := lockItem(ctx, tx, id, callerUID)
		if err != nil {
			return err
		}

		existing.Title = model.CleanText(in.Title)
		existing.Description = model.CleanText(in.Description)
		existing.Location = model.CleanText(in.Location)
		existing.Contact = model.CleanText(in.Contact)
		existing.Date = model.CleanText(in.Date)
		existing.Status = in.Status
		existing.UpdatedAt = time.Now().UnixMilli()

		_, err = tx.ExecContext(ctx,
			`UPDATE items SET title = ?, description = ?, location = ?, contact = ?,
			                  date = ?, status = ?, updated_at = ?
			 WHERE id = ?`,
			existing.Title, existing.Description, existing.Location, existing.Contact,
			existing.Date, existing.Status, existing.UpdatedAt, id,
		)
		if err != nil {
			return fmt.Errorf("updating item: %w", err)
		}

		item = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetItemStatus sets an item's status directly (any of the three statuses is
// accepted; the cyclic order is a client-side convenience) and records the
// transition in the audit trail, all in one transaction.
func SetItemStatus(ctx context.Context, db *sql.DB, id, callerUID, newStatus string) (*model.Item, error) {
	var item *model.Item
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		existing, err := lockItem(ctx, tx, id, callerUID)
		if err != nil {
			return err
		}

		from := existing.Status
		existing.Status = newStatus
		existing.UpdatedAt = time.Now().UnixMilli()

		_, err = tx.ExecContext(ctx,
			`UPDATE items SET status = ?, updated_at = ? WHERE id = ?`,
			existing.Status, existing.UpdatedAt, id,
		)
		if err != nil {
			return fmt.Errorf("updating item status: %w", err)
		}

		if err := recordStatusEvent(ctx, tx, id, from, newStatus, callerUID, existing.UpdatedAt); err != nil {
			return err
		}

		item = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem permanently removes an item. Counters are never decremented, so
// the item's reference code is retired with it.
func DeleteItem(ctx context.Context, db *sql.DB, id, callerUID string) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := lockItem(ctx, tx, id, callerUID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting item: %w", err)
		}
		return nil
	})
}

// SetItemPhoto stores an item's processed photo, owner-only.
func SetItemPhoto(ctx context.Context, db *sql.DB, id, callerUID string, photo []byte, mime string) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := lockItem(ctx, tx, id, callerUID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE items SET photo = ?, photo_mime = ?, updated_at = ? WHERE id = ?`,
			photo, mime, time.Now().UnixMilli(), id,
		)
		if err != nil {
			return fmt.Errorf("setting item photo: %w", err)
		}
		return nil
	})
}

// GetItemPhoto returns an item's photo bytes and MIME type, or nil if the
// item has no photo.
func GetItemPhoto(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}

// lockItem loads an item inside tx and applies the ownership gate shared by
// every mutating operation: ErrNotFound if the row is missing, ErrForbidden
// if the caller is not the owner.
func lockItem(ctx context.Context, tx *sql.Tx, id, callerUID string) (*model.Item, error) {
	item, err := scanItem(tx.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("loading item: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if item.OwnerUID != callerUID {
		return nil, ErrForbidden
	}
	return item, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var photoMime sql.NullString
	err := row.Scan(
		&item.ID, &item.ReferenceCode, &item.Category, &item.Title, &item.Description,
		&item.Location, &item.Contact, &item.Date, &item.Status,
		&item.OwnerUID, &item.OwnerEmail, &photoMime, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item.PhotoMime = photoMime.String
	return item, nil
}
