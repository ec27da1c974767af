package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/campuslf/lostfound/internal/model"
)

const itemColumns = `id, title, category, location_found, location_id, date_found,
	description, photo_filename, status, created_at`

// ItemFilter narrows ListItems. Zero values match everything.
type ItemFilter struct {
	Statuses []string
	// Query is a case-insensitive substring matched against title,
	// description and location_found. Both sides are Unicode case folded,
	// the columns through the casefold SQL function.
	Query    string
	Category string
}

// CreateItem inserts a new pending item.
func CreateItem(ctx context.Context, db *sql.DB, item *model.FoundItem) (*model.FoundItem, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO found_items (title, category, location_found, location_id, date_found,
		                          description, photo_filename, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, item.Category, item.LocationFound, nullString(item.LocationID), item.DateFound,
		item.Description, nullString(item.PhotoFilename), model.ItemStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.FoundItem, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM found_items WHERE id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return &item, nil
}

// ListItems returns items matching the filter, newest first.
func ListItems(ctx context.Context, db *sql.DB, f ItemFilter) ([]model.FoundItem, error) {
	var (
		where []string
		args  []any
	)

	if len(f.Statuses) > 0 {
		where = append(where, `status IN (?`+strings.Repeat(`, ?`, len(f.Statuses)-1)+`)`)
		for _, s := range f.Statuses {
			args = append(args, s)
		}
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + escapeLike(cases.Fold().String(q)) + "%"
		where = append(where,
			`(casefold(title) LIKE ? ESCAPE '\' OR casefold(description) LIKE ? ESCAPE '\' OR casefold(location_found) LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	if f.Category != "" {
		where = append(where, `category = ?`)
		args = append(args, f.Category)
	}

	query := `SELECT ` + itemColumns + ` FROM found_items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.FoundItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListCategories returns the distinct categories of all items.
func ListCategories(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT category FROM found_items ORDER BY category ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// SetItemStatus overwrites an item's status. Missing items are not an error.
func SetItemStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	if !model.ValidItemStatus(status) {
		return fmt.Errorf("setting item status: unknown status %q", status)
	}
	_, err := db.ExecContext(ctx,
		`UPDATE found_items SET status = ? WHERE id = ?`, status, id,
	)
	if err != nil {
		return fmt.Errorf("setting item status: %w", err)
	}
	return nil
}

// DeleteItem removes an item. Its claims are removed by the foreign key cascade.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM found_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// GetItemStats counts items per status and claims overall.
func GetItemStats(ctx context.Context, db *sql.DB) (*model.ItemStats, error) {
	s := &model.ItemStats{}
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(status = 'approved'), 0),
		        COALESCE(SUM(status = 'claimed'), 0),
		        COALESCE(SUM(status = 'pending'), 0),
		        (SELECT COUNT(*) FROM claims)
		 FROM found_items`,
	).Scan(&s.TotalFound, &s.ApprovedFound, &s.Claimed, &s.Pending, &s.TotalClaims)
	if err != nil {
		return nil, fmt.Errorf("counting items: %w", err)
	}
	return s, nil
}

func scanItem(s rowScanner) (model.FoundItem, error) {
	var item model.FoundItem
	var locationID, photo sql.NullString
	err := s.Scan(&item.ID, &item.Title, &item.Category, &item.LocationFound, &locationID,
		&item.DateFound, &item.Description, &photo, &item.Status, timestamp{&item.CreatedAt})
	item.LocationID = locationID.String
	item.PhotoFilename = photo.String
	return item, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
