package store

import (
	"database/sql"
	"fmt"

	"github.com/qazasd2518995/furhub/internal/models"
)

// CreateUser inserts a new user and fills in its generated id. Username and
// email carry UNIQUE constraints, so a duplicate comes back as a driver error.
func (s *Store) CreateUser(user *models.User) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`INSERT INTO users (username, email, password_hash, is_admin) VALUES (?, ?, ?, ?)`,
			user.Username, user.Email, user.PasswordHash, user.IsAdmin,
		)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		user.ID = int(id)
		return nil
	})
}

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	return s.scanUser(s.DB.QueryRow(
		`SELECT id, username, email, password_hash, is_admin FROM users WHERE username = ?`, username))
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	return s.scanUser(s.DB.QueryRow(
		`SELECT id, username, email, password_hash, is_admin FROM users WHERE email = ?`, email))
}

func (s *Store) GetUserByID(id int) (*models.User, error) {
	return s.scanUser(s.DB.QueryRow(
		`SELECT id, username, email, password_hash, is_admin FROM users WHERE id = ?`, id))
}

func (s *Store) CountUsers() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (s *Store) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsAdmin); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
