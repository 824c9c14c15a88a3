package store

import (
	"database/sql"
	"fmt"

	"github.com/qazasd2518995/furhub/internal/models"
)

// CreateOrder inserts an order. The item id is deliberately not checked
// against the items table; orders for since-deleted items are tolerated.
func (s *Store) CreateOrder(order *models.Order) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`INSERT INTO orders (item_id, buyer_location, buyer_phone, buyer_email, created_at)
			 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			order.ItemID, order.BuyerLocation, order.BuyerPhone, order.BuyerEmail,
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		order.ID = int(id)
		return nil
	})
}

// ListOrdersWithItems returns all orders joined with their current item data,
// newest first. Orders whose item no longer exists drop out of the join.
func (s *Store) ListOrdersWithItems() ([]models.Order, error) {
	query := `
		SELECT o.id, o.item_id, o.buyer_location, o.buyer_phone, o.buyer_email, o.created_at,
		       i.content, i.store, i.price, i.image
		FROM orders o
		JOIN items i ON o.item_id = i.id
		ORDER BY o.id DESC
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.ItemID, &o.BuyerLocation, &o.BuyerPhone, &o.BuyerEmail, &o.CreatedAt,
			&o.ItemContent, &o.ItemStore, &o.ItemPrice, &o.ItemImage); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) CountOrders() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}
