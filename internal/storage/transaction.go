package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
)

// WalletTransactionStorage records and reads ledger entries. Creation always
// happens inside the SQL transaction that moves the balance.
type WalletTransactionStorage interface {
	CreateTransactionTx(ctx context.Context, tx *sql.Tx, t *models.WalletTransaction) error
	GetTransactionsByUserID(ctx context.Context, userID int64, limit int) ([]*models.WalletTransaction, error)
}

type walletTransactionRepository struct {
	db *sql.DB
}

func NewWalletTransactionRepository(db *sql.DB) WalletTransactionStorage {
	return &walletTransactionRepository{db: db}
}

func (r *walletTransactionRepository) CreateTransactionTx(ctx context.Context, tx *sql.Tx, t *models.WalletTransaction) error {
	query := `INSERT INTO wallet_transactions
	          (user_id, type, status, amount_coins, amount_diamonds, amount_cash, currency, related_user_id, description, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`
	_, err := tx.ExecContext(ctx, query,
		t.UserID, t.Type, t.Status, t.AmountCoins, t.AmountDiamonds, t.AmountCash, t.Currency, t.RelatedUserID, t.Description)
	if err != nil {
		return fmt.Errorf("failed to create wallet transaction: %w", err)
	}
	return nil
}

func (r *walletTransactionRepository) GetTransactionsByUserID(ctx context.Context, userID int64, limit int) ([]*models.WalletTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, user_id, type, status, amount_coins, amount_diamonds, amount_cash, COALESCE(currency, ''), related_user_id, description, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.WalletTransaction
	for rows.Next() {
		t := &models.WalletTransaction{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Status, &t.AmountCoins, &t.AmountDiamonds,
			&t.AmountCash, &t.Currency, &t.RelatedUserID, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}
