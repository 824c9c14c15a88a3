package store

import (
	"database/sql"
	"fmt"

	"github.com/qazasd2518995/furhub/internal/models"
)

func (s *Store) CreateItem(item *models.Item) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`INSERT INTO items (content, store, price, category, image, user_id) VALUES (?, ?, ?, ?, ?, ?)`,
			item.Content, item.Store, item.Price, item.Category, item.Image, nullableID(item.UserID),
		)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		item.ID = int(id)
		return nil
	})
}

// SearchItems returns items whose content contains q, case-insensitively,
// newest first. An empty q returns the whole catalog.
func (s *Store) SearchItems(q string) ([]models.Item, error) {
	query := `SELECT id, content, store, price, category, image, COALESCE(user_id, 0)
	          FROM items`
	args := []any{}
	if q != "" {
		query += ` WHERE instr(lower(content), lower(?)) > 0`
		args = append(args, q)
	}
	query += ` ORDER BY id DESC`

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var i models.Item
		if err := rows.Scan(&i.ID, &i.Content, &i.Store, &i.Price, &i.Category, &i.Image, &i.UserID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (s *Store) GetItemByID(id int) (*models.Item, error) {
	query := `SELECT id, content, store, price, category, image, COALESCE(user_id, 0)
	          FROM items WHERE id = ?`
	var i models.Item
	err := s.DB.QueryRow(query, id).Scan(&i.ID, &i.Content, &i.Store, &i.Price, &i.Category, &i.Image, &i.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (s *Store) DeleteItem(id int) error {
	return s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM items WHERE id = ?`, id)
		return err
	})
}

func (s *Store) CountItems() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&count)
	return count, err
}

// nullableID maps the zero id to NULL so unowned items stay unattributed.
func nullableID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}
