package models

import "time"

// Wallet transaction types.
const (
	TxRecharge         = "recharge"
	TxExchange         = "exchange"
	TxTransferSent     = "transfer_sent"
	TxTransferReceived = "transfer_received"
	TxWithdrawal       = "withdrawal"
	TxGiftSent         = "gift_sent"
	TxGiftReceived     = "gift_received"
)

// Wallet transaction statuses. Only withdrawals stay pending: they are
// processed manually by support.
const (
	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
)

// Wallet currencies.
const (
	CurrencyCoins    = "coins"
	CurrencyDiamonds = "diamonds"
)

// WalletTransaction is an append-only ledger record. Every balance-changing
// operation writes exactly one record per affected user in the same SQL
// transaction as the balance mutation.
type WalletTransaction struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	AmountCoins    int64     `json:"amount_coins"`
	AmountDiamonds int64     `json:"amount_diamonds"`
	AmountCash     float64   `json:"amount_cash"`
	Currency       string    `json:"currency,omitempty"`
	RelatedUserID  *int64    `json:"related_user_id,omitempty"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// CoinPackage is a purchasable recharge pack. The catalog is fixed product
// configuration, not stored data.
type CoinPackage struct {
	ID    string  `json:"id"`
	Coins int64   `json:"coins"`
	Bonus int64   `json:"bonus"`
	Price float64 `json:"price"`
}
