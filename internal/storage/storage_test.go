package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

var userCols = []string{"id", "email", "full_name", "pass_hash", "role", "coin_balance", "diamond_balance", "expo_push_token", "created_at"}

func TestGetUserByID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()
	userID := int64(1)

	rows := sqlmock.NewRows(userCols).
		AddRow(userID, "test@example.com", "Test User", []byte("hashed-password"),
			models.RoleCustomer, int64(1000), int64(50), "ExponentPushToken[abc]", time.Now())

	mock.ExpectQuery("SELECT id, email, full_name, pass_hash, role, coin_balance, diamond_balance, COALESCE\\(expo_push_token, ''\\), created_at FROM users WHERE id = \\$1").
		WithArgs(userID).WillReturnRows(rows)

	user, err := repo.GetUserByID(ctx, userID)
	assert.NoError(t, err, "Expected no error when user is found")
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, int64(1000), user.CoinBalance)
	assert.Equal(t, int64(50), user.DiamondBalance)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT .+ FROM users WHERE id = \\$1").
		WithArgs(int64(2)).WillReturnRows(sqlmock.NewRows(userCols))

	user, err := repo.GetUserByID(ctx, 2)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, user, "User should be nil when not found")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustWalletTx_AppliesDeltas(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET coin_balance = coin_balance + $1, diamond_balance = diamond_balance + $2 WHERE id = $3")).
		WithArgs(int64(-100), int64(70), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)

	err = repo.AdjustWalletTx(ctx, tx, 1, -100, 70)
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustWalletTx_UserMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET coin_balance").
		WithArgs(int64(10), int64(0), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)

	err = repo.AdjustWalletTx(ctx, tx, 99, 10, 0)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransactionTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewWalletTransactionRepository(db)
	ctx := context.Background()

	related := int64(2)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO wallet_transactions").
		WithArgs(int64(1), models.TxTransferSent, models.TxStatusCompleted,
			int64(-100), int64(0), 0.0, models.CurrencyCoins, &related, "transfer to friend").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)

	err = repo.CreateTransactionTx(ctx, tx, &models.WalletTransaction{
		UserID:        1,
		Type:          models.TxTransferSent,
		Status:        models.TxStatusCompleted,
		AmountCoins:   -100,
		Currency:      models.CurrencyCoins,
		RelatedUserID: &related,
		Description:   "transfer to friend",
	})
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransactionsByUserID_DefaultLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewWalletTransactionRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "user_id", "type", "status", "amount_coins", "amount_diamonds", "amount_cash", "currency", "related_user_id", "description", "created_at"}).
		AddRow(int64(10), int64(1), models.TxRecharge, models.TxStatusCompleted,
			int64(100), int64(0), 3.0, models.CurrencyCoins, nil, "pack 1", time.Now())

	mock.ExpectQuery("SELECT .+ FROM wallet_transactions").
		WithArgs(int64(1), 50).
		WillReturnRows(rows)

	list, err := repo.GetTransactionsByUserID(ctx, 1, 0)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, models.TxRecharge, list[0].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFriendshipTx_InsertsPair(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewFriendRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO friendships").
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)

	err = repo.AddFriendshipTx(ctx, tx, 1, 2)
	assert.NoError(t, err)
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRequestStatus_OnlyPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewFriendRepository(db)
	ctx := context.Background()

	// A request already accepted or rejected must not change again.
	mock.ExpectExec("UPDATE friend_requests SET status = \\$1 WHERE id = \\$2 AND status = 'pending'").
		WithArgs(models.RequestRejected, "req-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateRequestStatus(ctx, "req-1", models.RequestRejected)
	assert.ErrorIs(t, err, storage.ErrRequestNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_InsertsItemsInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), 45.5, "cash_on_delivery", models.OrderPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(int64(7), int64(3), "T-Shirt", 20.0, 2, "M", "black").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	order, err := repo.CreateOrder(ctx, &models.Order{
		UserID:        1,
		Total:         45.5,
		PaymentMethod: "cash_on_delivery",
		Status:        models.OrderPending,
		Items: []models.OrderItem{
			{ProductID: 3, Name: "T-Shirt", Price: 20.0, Quantity: 2, Size: "M", Color: "black"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, int64(1), order.Items[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_ItemFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))
	mock.ExpectQuery("INSERT INTO order_items").
		WillReturnError(errors.New("db error"))
	mock.ExpectRollback()

	order, err := repo.CreateOrder(ctx, &models.Order{
		UserID: 1,
		Status: models.OrderPending,
		Items:  []models.OrderItem{{ProductID: 3, Name: "x", Price: 1, Quantity: 1}},
	})
	assert.Error(t, err)
	assert.Nil(t, order)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(models.OrderShipped, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateOrderStatus(ctx, 99, models.OrderShipped)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCouponByCode_NormalizesCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCouponRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "code", "type", "value", "is_active", "expires_at"}).
		AddRow(int64(1), "SUMMER10", models.CouponPercentage, 10.0, true, nil)

	mock.ExpectQuery("SELECT id, code, type, value, is_active, expires_at FROM coupons WHERE code = \\$1").
		WithArgs("SUMMER10").
		WillReturnRows(rows)

	c, err := repo.GetCouponByCode(ctx, "  summer10 ")
	assert.NoError(t, err)
	assert.Equal(t, "SUMMER10", c.Code)
	assert.Equal(t, models.CouponPercentage, c.Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFlashSale_NotConfigured(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewFlashSaleRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT end_time, product_ids, updated_at FROM flash_sale WHERE id = 1").
		WillReturnRows(sqlmock.NewRows([]string{"end_time", "product_ids", "updated_at"}))

	sale, err := repo.GetFlashSale(ctx)
	assert.ErrorIs(t, err, storage.ErrFlashSaleNotFound)
	assert.Nil(t, sale)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredReels_ReturnsCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewReelRepository(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM reels WHERE expires_at <= NOW\\(\\)").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpiredReels(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMessage_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewChatRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO support_messages").
		WithArgs(int64(1), models.SenderCustomer, "hello").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), time.Now()))

	msg, err := repo.CreateMessage(ctx, &models.SupportMessage{
		UserID: 1,
		SenderRole: models.SenderCustomer,
		Body:   "hello",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), msg.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
