package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/events"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/metrics"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

// DiamondToCashRate converts one diamond into cash (TND).
const DiamondToCashRate = 0.01

// WithdrawalMinimumCash is the smallest cash amount support will pay out.
const WithdrawalMinimumCash = 50.0

// Exchange directions.
const (
	ExchangeCoinsToDiamonds = "coins_to_diamonds"
	ExchangeDiamondsToCoins = "diamonds_to_coins"
)

// CoinPackages is the fixed recharge catalog. IDs and prices match the
// storefront product sheet.
var CoinPackages = []models.CoinPackage{
	{ID: "1", Coins: 100, Bonus: 0, Price: 3.00},
	{ID: "2", Coins: 550, Bonus: 50, Price: 15.00},
	{ID: "3", Coins: 1200, Bonus: 200, Price: 30.00},
	{ID: "4", Coins: 2500, Bonus: 500, Price: 60.00},
	{ID: "5", Coins: 6500, Bonus: 1500, Price: 150.00},
	{ID: "6", Coins: 13500, Bonus: 3500, Price: 300.00},
}

// CoinsToDiamonds applies the 30% exchange fee, rounding up in the user's
// favor: ceil(amount * 0.7) in integer arithmetic.
func CoinsToDiamonds(amount int64) int64 {
	return (7*amount + 9) / 10
}

type WalletService interface {
	Packages() []models.CoinPackage
	Recharge(ctx context.Context, userID int64, packageID string) (*models.User, error)
	Exchange(ctx context.Context, userID int64, direction string, amount int64) (*models.User, error)
	Transfer(ctx context.Context, senderID int64, recipientEmail, currency string, amount int64) error
	SendGift(ctx context.Context, senderID, hostID int64, amount int64) error
	RequestWithdrawal(ctx context.Context, userID int64) (float64, error)
	History(ctx context.Context, userID int64, limit int) ([]*models.WalletTransaction, error)
}

type walletService struct {
	log      *slog.Logger
	db       *sql.DB
	userRepo storage.UserStorage
	txRepo   storage.WalletTransactionStorage
	friends  storage.FriendStorage
	producer events.Producer
	topic    string
}

func NewWalletService(log *slog.Logger, db *sql.DB, userRepo storage.UserStorage,
	txRepo storage.WalletTransactionStorage, friends storage.FriendStorage,
	producer events.Producer, topic string) WalletService {
	return &walletService{
		log:      log,
		db:       db,
		userRepo: userRepo,
		txRepo:   txRepo,
		friends:  friends,
		producer: producer,
		topic:    topic,
	}
}

func (s *walletService) Packages() []models.CoinPackage {
	return CoinPackages
}

func (s *walletService) rollback(logger *slog.Logger, tx *sql.Tx) {
	if rbErr := tx.Rollback(); rbErr != nil {
		logger.Error("transaction rollback failed", slog.Any("error", rbErr))
	}
	metrics.WalletTransactionsFailed.Inc()
}

// publish mirrors a committed ledger record onto the event bus.
func (s *walletService) publish(t *models.WalletTransaction) {
	metrics.WalletTransactionsTotal.WithLabelValues(t.Type).Inc()
	if s.producer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.producer.Publish(ctx, s.topic, t.UserID, events.TransactionEvent{
			Type:           t.Type,
			UserID:         t.UserID,
			AmountCoins:    t.AmountCoins,
			AmountDiamonds: t.AmountDiamonds,
			RelatedUserID:  t.RelatedUserID,
			CreatedAt:      time.Now(),
		})
	}()
}

func (s *walletService) Recharge(ctx context.Context, userID int64, packageID string) (*models.User, error) {
	const op = "service.WalletService.Recharge"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.String("packageID", packageID),
	)

	var pack *models.CoinPackage
	for i := range CoinPackages {
		if CoinPackages[i].ID == packageID {
			pack = &CoinPackages[i]
			break
		}
	}
	if pack == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownPackage)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	user, err := s.userRepo.LockUserByIDTx(ctx, tx, userID)
	if err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to lock user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	credited := pack.Coins + pack.Bonus
	if err := s.userRepo.AdjustWalletTx(ctx, tx, userID, credited, 0); err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to credit coins", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record := &models.WalletTransaction{
		UserID:      userID,
		Type:        models.TxRecharge,
		Status:      models.TxStatusCompleted,
		AmountCoins: credited,
		AmountCash:  pack.Price,
		Currency:    models.CurrencyCoins,
		Description: fmt.Sprintf("recharge pack %s", pack.ID),
	}
	if err := s.txRepo.CreateTransactionTx(ctx, tx, record); err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to record transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	s.publish(record)
	logger.Info("recharge committed", slog.Int64("credited", credited))

	user.CoinBalance += credited
	return user, nil
}

func (s *walletService) Exchange(ctx context.Context, userID int64, direction string, amount int64) (*models.User, error) {
	const op = "service.WalletService.Exchange"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.String("direction", direction),
		slog.Int64("amount", amount),
	)

	if amount <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidAmount)
	}

	var coinsDelta, diamondsDelta int64
	switch direction {
	case ExchangeCoinsToDiamonds:
		coinsDelta = -amount
		diamondsDelta = CoinsToDiamonds(amount)
	case ExchangeDiamondsToCoins:
		coinsDelta = amount
		diamondsDelta = -amount
	default:
		return nil, fmt.Errorf("%s: unknown direction %q", op, direction)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	user, err := s.userRepo.LockUserByIDTx(ctx, tx, userID)
	if err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to lock user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if user.CoinBalance+coinsDelta < 0 || user.DiamondBalance+diamondsDelta < 0 {
		s.rollback(logger, tx)
		logger.Warn("insufficient balance",
			slog.Int64("coins", user.CoinBalance), slog.Int64("diamonds", user.DiamondBalance))
		return nil, fmt.Errorf("%s: %w", op, ErrInsufficientBalance)
	}

	if err := s.userRepo.AdjustWalletTx(ctx, tx, userID, coinsDelta, diamondsDelta); err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to adjust wallet", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record := &models.WalletTransaction{
		UserID:         userID,
		Type:           models.TxExchange,
		Status:         models.TxStatusCompleted,
		AmountCoins:    coinsDelta,
		AmountDiamonds: diamondsDelta,
		Description:    direction,
	}
	if err := s.txRepo.CreateTransactionTx(ctx, tx, record); err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to record transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	s.publish(record)
	logger.Info("exchange committed")

	user.CoinBalance += coinsDelta
	user.DiamondBalance += diamondsDelta
	return user, nil
}

func (s *walletService) Transfer(ctx context.Context, senderID int64, recipientEmail, currency string, amount int64) error {
	const op = "service.WalletService.Transfer"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("senderID", senderID),
		slog.String("recipient", recipientEmail),
		slog.String("currency", currency),
		slog.Int64("amount", amount),
	)
	logger.Info("starting transfer transaction")

	if amount <= 0 {
		return fmt.Errorf("%s: %w", op, ErrInvalidAmount)
	}
	if currency != models.CurrencyCoins && currency != models.CurrencyDiamonds {
		return fmt.Errorf("%s: unknown currency %q", op, currency)
	}

	recipient, err := s.userRepo.GetUserByEmail(ctx, recipientEmail)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		logger.Error("failed to get recipient", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if recipient.ID == senderID {
		return fmt.Errorf("%s: %w", op, ErrSelfTransfer)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	// The friendship edge is re-checked under the transaction so a
	// concurrent unfriend cannot slip a transfer through.
	areFriends, err := s.friends.AreFriendsTx(ctx, tx, senderID, recipient.ID)
	if err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to check friendship", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if !areFriends {
		s.rollback(logger, tx)
		logger.Warn("transfer between non-friends rejected")
		return fmt.Errorf("%s: %w", op, ErrNotFriends)
	}

	// Lock both rows in id order to keep concurrent transfers deadlock-free.
	firstID, secondID := senderID, recipient.ID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	var sender *models.User
	for _, id := range []int64{firstID, secondID} {
		user, err := s.userRepo.LockUserByIDTx(ctx, tx, id)
		if err != nil {
			s.rollback(logger, tx)
			logger.Error("failed to lock user", slog.Int64("lockUserID", id), slog.Any("error", err))
			return fmt.Errorf("%s: %w", op, err)
		}
		if id == senderID {
			sender = user
		}
	}

	balance := sender.CoinBalance
	if currency == models.CurrencyDiamonds {
		balance = sender.DiamondBalance
	}
	if balance < amount {
		s.rollback(logger, tx)
		logger.Warn("insufficient funds", slog.Int64("senderBalance", balance))
		return fmt.Errorf("%s: %w", op, ErrInsufficientBalance)
	}

	coinsDelta, diamondsDelta := amount, int64(0)
	if currency == models.CurrencyDiamonds {
		coinsDelta, diamondsDelta = 0, amount
	}
	if err := s.userRepo.AdjustWalletTx(ctx, tx, senderID, -coinsDelta, -diamondsDelta); err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to debit sender", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.userRepo.AdjustWalletTx(ctx, tx, recipient.ID, coinsDelta, diamondsDelta); err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to credit recipient", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	sent := &models.WalletTransaction{
		UserID:         senderID,
		Type:           models.TxTransferSent,
		Status:         models.TxStatusCompleted,
		AmountCoins:    -coinsDelta,
		AmountDiamonds: -diamondsDelta,
		Currency:       currency,
		RelatedUserID:  &recipient.ID,
		Description:    fmt.Sprintf("transfer to %s", recipient.Email),
	}
	received := &models.WalletTransaction{
		UserID:         recipient.ID,
		Type:           models.TxTransferReceived,
		Status:         models.TxStatusCompleted,
		AmountCoins:    coinsDelta,
		AmountDiamonds: diamondsDelta,
		Currency:       currency,
		RelatedUserID:  &senderID,
		Description:    fmt.Sprintf("transfer from %s", sender.Email),
	}
	for _, record := range []*models.WalletTransaction{sent, received} {
		if err := s.txRepo.CreateTransactionTx(ctx, tx, record); err != nil {
			s.rollback(logger, tx)
			logger.Error("failed to record transaction", slog.Any("error", err))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	s.publish(sent)
	s.publish(received)
	logger.Info("transfer committed")
	return nil
}

// SendGift moves coins from a viewer to a stream host, credited as diamonds.
// Gifts do not require friendship.
func (s *walletService) SendGift(ctx context.Context, senderID, hostID int64, amount int64) error {
	const op = "service.WalletService.SendGift"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("senderID", senderID),
		slog.Int64("hostID", hostID),
		slog.Int64("amount", amount),
	)

	if amount <= 0 {
		return fmt.Errorf("%s: %w", op, ErrInvalidAmount)
	}
	if senderID == hostID {
		return fmt.Errorf("%s: %w", op, ErrSelfTransfer)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	firstID, secondID := senderID, hostID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	var sender *models.User
	for _, id := range []int64{firstID, secondID} {
		user, err := s.userRepo.LockUserByIDTx(ctx, tx, id)
		if err != nil {
			s.rollback(logger, tx)
			logger.Error("failed to lock user", slog.Int64("lockUserID", id), slog.Any("error", err))
			return fmt.Errorf("%s: %w", op, err)
		}
		if id == senderID {
			sender = user
		}
	}

	if sender.CoinBalance < amount {
		s.rollback(logger, tx)
		logger.Warn("insufficient funds", slog.Int64("senderBalance", sender.CoinBalance))
		return fmt.Errorf("%s: %w", op, ErrInsufficientBalance)
	}

	if err := s.userRepo.AdjustWalletTx(ctx, tx, senderID, -amount, 0); err != nil {
		s.rollback(logger, tx)
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.userRepo.AdjustWalletTx(ctx, tx, hostID, 0, amount); err != nil {
		s.rollback(logger, tx)
		return fmt.Errorf("%s: %w", op, err)
	}

	sent := &models.WalletTransaction{
		UserID:        senderID,
		Type:          models.TxGiftSent,
		Status:        models.TxStatusCompleted,
		AmountCoins:   -amount,
		Currency:      models.CurrencyCoins,
		RelatedUserID: &hostID,
		Description:   "gift sent",
	}
	received := &models.WalletTransaction{
		UserID:         hostID,
		Type:           models.TxGiftReceived,
		Status:         models.TxStatusCompleted,
		AmountDiamonds: amount,
		Currency:       models.CurrencyDiamonds,
		RelatedUserID:  &senderID,
		Description:    "gift received",
	}
	for _, record := range []*models.WalletTransaction{sent, received} {
		if err := s.txRepo.CreateTransactionTx(ctx, tx, record); err != nil {
			s.rollback(logger, tx)
			logger.Error("failed to record transaction", slog.Any("error", err))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	s.publish(sent)
	s.publish(received)
	logger.Info("gift committed")
	return nil
}

// RequestWithdrawal converts the full diamond balance into a pending cash
// payout. Support processes pending withdrawals manually.
func (s *walletService) RequestWithdrawal(ctx context.Context, userID int64) (float64, error) {
	const op = "service.WalletService.RequestWithdrawal"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	user, err := s.userRepo.LockUserByIDTx(ctx, tx, userID)
	if err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to lock user", slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	cash := float64(user.DiamondBalance) * DiamondToCashRate
	if cash < WithdrawalMinimumCash {
		s.rollback(logger, tx)
		logger.Warn("withdrawal below minimum", slog.Float64("cash", cash))
		return 0, fmt.Errorf("%s: %w", op, ErrWithdrawalBelowMinimum)
	}

	if err := s.userRepo.AdjustWalletTx(ctx, tx, userID, 0, -user.DiamondBalance); err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to debit diamonds", slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	record := &models.WalletTransaction{
		UserID:         userID,
		Type:           models.TxWithdrawal,
		Status:         models.TxStatusPending,
		AmountDiamonds: -user.DiamondBalance,
		AmountCash:     cash,
		Currency:       models.CurrencyDiamonds,
		Description:    "withdrawal request",
	}
	if err := s.txRepo.CreateTransactionTx(ctx, tx, record); err != nil {
		s.rollback(logger, tx)
		logger.Error("failed to record transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	s.publish(record)
	logger.Info("withdrawal requested", slog.Float64("cash", cash))
	return cash, nil
}

func (s *walletService) History(ctx context.Context, userID int64, limit int) ([]*models.WalletTransaction, error) {
	const op = "service.WalletService.History"

	transactions, err := s.txRepo.GetTransactionsByUserID(ctx, userID, limit)
	if err != nil {
		s.log.Error("failed to load transactions", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return transactions, nil
}
