package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserStorage interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	LockUserByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.User, error)
	// AdjustWalletTx applies relative wallet deltas. Balances are never set to
	// absolute values; the CHECK constraints reject negative results.
	AdjustWalletTx(ctx context.Context, tx *sql.Tx, id int64, coinsDelta, diamondsDelta int64) error
	UpdatePushToken(ctx context.Context, id int64, token string) error
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListPushTokens(ctx context.Context) ([]string, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

const userColumns = "id, email, full_name, pass_hash, role, coin_balance, diamond_balance, COALESCE(expo_push_token, ''), created_at"

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.PassHash, &user.Role,
		&user.CoinBalance, &user.DiamondBalance, &user.ExpoPushToken, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row)
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (email, full_name, pass_hash, role, coin_balance, diamond_balance) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		user.Email, user.FullName, user.PassHash, user.Role, user.CoinBalance, user.DiamondBalance,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// LockUserByIDTx reads the user with a row lock so balance checks stay valid
// for the rest of the transaction.
func (r *userRepository) LockUserByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.User, error) {
	user := &models.User{}
	row := tx.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1 FOR UPDATE NOWAIT", id)
	err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.PassHash, &user.Role,
		&user.CoinBalance, &user.DiamondBalance, &user.ExpoPushToken, &user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "55P03" { // lock
				return nil, fmt.Errorf("resource is locked, please try again: %w", err)
			}
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) AdjustWalletTx(ctx context.Context, tx *sql.Tx, id int64, coinsDelta, diamondsDelta int64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE users SET coin_balance = coin_balance + $1, diamond_balance = diamond_balance + $2 WHERE id = $3",
		coinsDelta, diamondsDelta, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePushToken(ctx context.Context, id int64, token string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET expo_push_token = $1 WHERE id = $2", token, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Email, &user.FullName, &user.PassHash, &user.Role,
			&user.CoinBalance, &user.DiamondBalance, &user.ExpoPushToken, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListPushTokens(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT expo_push_token FROM users WHERE expo_push_token IS NOT NULL AND expo_push_token <> ''")
	if err != nil {
		return nil, fmt.Errorf("failed to query push tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
