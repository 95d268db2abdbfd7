package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

func TestCoinsToDiamonds_CeilOfSeventyPercent(t *testing.T) {
	for amount := int64(1); amount <= 1000; amount++ {
		want := int64(math.Ceil(float64(amount) * 0.7))
		got := service.CoinsToDiamonds(amount)
		assert.Equal(t, want, got, "amount %d", amount)
		// The fee means an exchange round trip can never gain coins.
		assert.LessOrEqual(t, got, amount)
	}
}

func TestRecharge_PackOneAddsExactlyHundred(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	users := newFakeUserRepo()
	user := users.add(&models.User{ID: 1, Email: "a@example.com"})
	txRepo := newFakeTxRepo()

	svc := service.NewWalletService(testLogger(), db, users, txRepo, newFakeFriendRepo(), nil, "")

	updated, err := svc.Recharge(context.Background(), 1, "1")
	assert.NoError(t, err)
	assert.Equal(t, int64(100), updated.CoinBalance)
	assert.Equal(t, int64(100), user.CoinBalance)

	assert.Len(t, txRepo.records, 1)
	record := txRepo.records[0]
	assert.Equal(t, models.TxRecharge, record.Type)
	assert.Equal(t, int64(100), record.AmountCoins)
	assert.Equal(t, 3.00, record.AmountCash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecharge_UnknownPackage(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	users := newFakeUserRepo()
	users.add(&models.User{ID: 1, Email: "a@example.com"})

	svc := service.NewWalletService(testLogger(), db, users, newFakeTxRepo(), newFakeFriendRepo(), nil, "")

	_, err = svc.Recharge(context.Background(), 1, "99")
	assert.ErrorIs(t, err, service.ErrUnknownPackage)
}

func TestExchange_CoinsToDiamonds(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	users := newFakeUserRepo()
	user := users.add(&models.User{ID: 1, Email: "a@example.com", CoinBalance: 100})
	txRepo := newFakeTxRepo()

	svc := service.NewWalletService(testLogger(), db, users, txRepo, newFakeFriendRepo(), nil, "")

	updated, err := svc.Exchange(context.Background(), 1, service.ExchangeCoinsToDiamonds, 100)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), updated.CoinBalance)
	assert.Equal(t, int64(70), updated.DiamondBalance)
	assert.Equal(t, int64(70), user.DiamondBalance)

	assert.Len(t, txRepo.records, 1)
	assert.Equal(t, models.TxExchange, txRepo.records[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExchange_RoundTripNeverGains(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	users := newFakeUserRepo()
	user := users.add(&models.User{ID: 1, Email: "a@example.com", CoinBalance: 1000})

	svc := service.NewWalletService(testLogger(), db, users, newFakeTxRepo(), newFakeFriendRepo(), nil, "")
	ctx := context.Background()

	_, err = svc.Exchange(ctx, 1, service.ExchangeCoinsToDiamonds, 1000)
	assert.NoError(t, err)
	_, err = svc.Exchange(ctx, 1, service.ExchangeDiamondsToCoins, user.DiamondBalance)
	assert.NoError(t, err)

	assert.LessOrEqual(t, user.CoinBalance, int64(1000))
	assert.Equal(t, int64(0), user.DiamondBalance)
}

func TestExchange_InvalidAmount(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := service.NewWalletService(testLogger(), db, newFakeUserRepo(), newFakeTxRepo(), newFakeFriendRepo(), nil, "")

	_, err = svc.Exchange(context.Background(), 1, service.ExchangeCoinsToDiamonds, 0)
	assert.ErrorIs(t, err, service.ErrInvalidAmount)
	_, err = svc.Exchange(context.Background(), 1, service.ExchangeCoinsToDiamonds, -5)
	assert.ErrorIs(t, err, service.ErrInvalidAmount)
}

func TestExchange_InsufficientBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	users := newFakeUserRepo()
	user := users.add(&models.User{ID: 1, Email: "a@example.com", CoinBalance: 10})
	txRepo := newFakeTxRepo()

	svc := service.NewWalletService(testLogger(), db, users, txRepo, newFakeFriendRepo(), nil, "")

	_, err = svc.Exchange(context.Background(), 1, service.ExchangeCoinsToDiamonds, 100)
	assert.ErrorIs(t, err, service.ErrInsufficientBalance)

	assert.Equal(t, int64(10), user.CoinBalance, "balance must be untouched")
	assert.Empty(t, txRepo.records, "no ledger record on rejection")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_NotFriendsRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	users := newFakeUserRepo()
	sender := users.add(&models.User{ID: 1, Email: "a@example.com", CoinBalance: 500})
	recipient := users.add(&models.User{ID: 2, Email: "b@example.com"})
	txRepo := newFakeTxRepo()

	svc := service.NewWalletService(testLogger(), db, users, txRepo, newFakeFriendRepo(), nil, "")

	err = svc.Transfer(context.Background(), 1, "b@example.com", models.CurrencyCoins, 100)
	assert.ErrorIs(t, err, service.ErrNotFriends)

	assert.Equal(t, int64(500), sender.CoinBalance)
	assert.Equal(t, int64(0), recipient.CoinBalance)
	assert.Empty(t, txRepo.records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_InsufficientBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	users := newFakeUserRepo()
	sender := users.add(&models.User{ID: 1, Email: "a@example.com", CoinBalance: 50})
	users.add(&models.User{ID: 2, Email: "b@example.com"})
	friends := newFakeFriendRepo()
	friends.befriend(1, 2)
	txRepo := newFakeTxRepo()

	svc := service.NewWalletService(testLogger(), db, users, txRepo, friends, nil, "")

	err = svc.Transfer(context.Background(), 1, "b@example.com", models.CurrencyCoins, 100)
	assert.ErrorIs(t, err, service.ErrInsufficientBalance)

	assert.Equal(t, int64(50), sender.CoinBalance)
	assert.Empty(t, txRepo.records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_SelfRejected(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	users := newFakeUserRepo()
	users.add(&models.User{ID: 1, Email: "a@example.com", CoinBalance: 500})

	svc := service.NewWalletService(testLogger(), db, users, newFakeTxRepo(), newFakeFriendRepo(), nil, "")

	err = svc.Transfer(context.Background(), 1, "a@example.com", models.CurrencyCoins, 100)
	assert.ErrorIs(t, err, service.ErrSelfTransfer)
}

func TestTransfer_WritesPairedRecords(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	users := newFakeUserRepo()
	sender := users.add(&models.User{ID: 1, Email: "a@example.com", CoinBalance: 500})
	recipient := users.add(&models.User{ID: 2, Email: "b@example.com"})
	friends := newFakeFriendRepo()
	friends.befriend(1, 2)
	txRepo := newFakeTxRepo()

	svc := service.NewWalletService(testLogger(), db, users, txRepo, friends, nil, "")

	err = svc.Transfer(context.Background(), 1, "b@example.com", models.CurrencyCoins, 100)
	assert.NoError(t, err)

	assert.Equal(t, int64(400), sender.CoinBalance)
	assert.Equal(t, int64(100), recipient.CoinBalance)

	assert.Len(t, txRepo.records, 2)
	sent, received := txRepo.records[0], txRepo.records[1]
	assert.Equal(t, models.TxTransferSent, sent.Type)
	assert.Equal(t, int64(-100), sent.AmountCoins)
	assert.Equal(t, int64(2), *sent.RelatedUserID)
	assert.Equal(t, models.TxTransferReceived, received.Type)
	assert.Equal(t, int64(100), received.AmountCoins)
	assert.Equal(t, int64(1), *received.RelatedUserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_DiamondsCurrency(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	users := newFakeUserRepo()
	sender := users.add(&models.User{ID: 1, Email: "a@example.com", DiamondBalance: 300})
	recipient := users.add(&models.User{ID: 2, Email: "b@example.com"})
	friends := newFakeFriendRepo()
	friends.befriend(1, 2)
	txRepo := newFakeTxRepo()

	svc := service.NewWalletService(testLogger(), db, users, txRepo, friends, nil, "")

	err = svc.Transfer(context.Background(), 1, "b@example.com", models.CurrencyDiamonds, 120)
	assert.NoError(t, err)

	assert.Equal(t, int64(180), sender.DiamondBalance)
	assert.Equal(t, int64(120), recipient.DiamondBalance)
	assert.Equal(t, int64(0), recipient.CoinBalance)

	assert.Len(t, txRepo.records, 2)
	assert.Equal(t, models.CurrencyDiamonds, txRepo.records[0].Currency)
	assert.Equal(t, int64(-120), txRepo.records[0].AmountDiamonds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendGift_CoinsBecomeDiamonds(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	users := newFakeUserRepo()
	sender := users.add(&models.User{ID: 1, Email: "a@example.com", CoinBalance: 500})
	host := users.add(&models.User{ID: 2, Email: "host@example.com"})
	txRepo := newFakeTxRepo()

	svc := service.NewWalletService(testLogger(), db, users, txRepo, newFakeFriendRepo(), nil, "")

	err = svc.SendGift(context.Background(), 1, 2, 200)
	assert.NoError(t, err)

	assert.Equal(t, int64(300), sender.CoinBalance)
	assert.Equal(t, int64(200), host.DiamondBalance)
	assert.Equal(t, int64(0), host.CoinBalance)

	assert.Len(t, txRepo.records, 2)
	assert.Equal(t, models.TxGiftSent, txRepo.records[0].Type)
	assert.Equal(t, models.TxGiftReceived, txRepo.records[1].Type)
	assert.Equal(t, int64(200), txRepo.records[1].AmountDiamonds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestWithdrawal_BelowMinimum(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	users := newFakeUserRepo()
	// 4999 diamonds = 49.99 cash, just under the 50.00 floor.
	user := users.add(&models.User{ID: 1, Email: "a@example.com", DiamondBalance: 4999})
	txRepo := newFakeTxRepo()

	svc := service.NewWalletService(testLogger(), db, users, txRepo, newFakeFriendRepo(), nil, "")

	_, err = svc.RequestWithdrawal(context.Background(), 1)
	assert.ErrorIs(t, err, service.ErrWithdrawalBelowMinimum)

	assert.Equal(t, int64(4999), user.DiamondBalance)
	assert.Empty(t, txRepo.records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestWithdrawal_ZeroesDiamondsPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	users := newFakeUserRepo()
	user := users.add(&models.User{ID: 1, Email: "a@example.com", DiamondBalance: 6000})
	txRepo := newFakeTxRepo()

	svc := service.NewWalletService(testLogger(), db, users, txRepo, newFakeFriendRepo(), nil, "")

	cash, err := svc.RequestWithdrawal(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 60.0, cash)
	assert.Equal(t, int64(0), user.DiamondBalance)

	assert.Len(t, txRepo.records, 1)
	record := txRepo.records[0]
	assert.Equal(t, models.TxWithdrawal, record.Type)
	assert.Equal(t, models.TxStatusPending, record.Status)
	assert.Equal(t, int64(-6000), record.AmountDiamonds)
	assert.Equal(t, 60.0, record.AmountCash)
	assert.NoError(t, mock.ExpectationsWereMet())
}
