package service_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by email
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		user.ID = int64(len(f.users) + 1)
	}
	f.users[user.Email] = user
	return user
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	return f.add(user), nil
}

func (f *fakeUserRepo) LockUserByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.User, error) {
	// The real repository scans a fresh row, so callers get a snapshot that
	// later AdjustWalletTx calls do not mutate. Return a copy to match.
	user, err := f.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := *user
	return &snapshot, nil
}

func (f *fakeUserRepo) AdjustWalletTx(ctx context.Context, tx *sql.Tx, id int64, coinsDelta, diamondsDelta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			u.CoinBalance += coinsDelta
			u.DiamondBalance += diamondsDelta
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePushToken(ctx context.Context, id int64, token string) error {
	user, err := f.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	user.ExpoPushToken = token
	return nil
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) ListPushTokens(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tokens []string
	for _, u := range f.users {
		if u.ExpoPushToken != "" {
			tokens = append(tokens, u.ExpoPushToken)
		}
	}
	return tokens, nil
}

type fakeTxRepo struct {
	mu      sync.Mutex
	records []*models.WalletTransaction
}

var _ storage.WalletTransactionStorage = (*fakeTxRepo)(nil)

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{}
}

func (f *fakeTxRepo) CreateTransactionTx(ctx context.Context, tx *sql.Tx, t *models.WalletTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = int64(len(f.records) + 1)
	t.CreatedAt = time.Now()
	f.records = append(f.records, t)
	return nil
}

func (f *fakeTxRepo) GetTransactionsByUserID(ctx context.Context, userID int64, limit int) ([]*models.WalletTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.WalletTransaction
	for _, t := range f.records {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeFriendRepo struct {
	mu       sync.Mutex
	requests map[string]*models.FriendRequest
	edges    map[[2]int64]bool
}

var _ storage.FriendStorage = (*fakeFriendRepo)(nil)

func newFakeFriendRepo() *fakeFriendRepo {
	return &fakeFriendRepo{
		requests: make(map[string]*models.FriendRequest),
		edges:    make(map[[2]int64]bool),
	}
}

func (f *fakeFriendRepo) befriend(a, b int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edges[[2]int64{a, b}] = true
	f.edges[[2]int64{b, a}] = true
}

func (f *fakeFriendRepo) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req.CreatedAt = time.Now()
	f.requests[req.ID] = req
	return nil
}

func (f *fakeFriendRepo) GetRequestByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, storage.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeFriendRepo) HasPendingRequest(ctx context.Context, userA, userB int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, req := range f.requests {
		if req.Status != models.RequestPending {
			continue
		}
		if (req.SenderID == userA && req.ReceiverID == userB) ||
			(req.SenderID == userB && req.ReceiverID == userA) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFriendRepo) updateStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok || req.Status != models.RequestPending {
		return storage.ErrRequestNotFound
	}
	req.Status = status
	return nil
}

func (f *fakeFriendRepo) UpdateRequestStatusTx(ctx context.Context, tx *sql.Tx, id string, status string) error {
	return f.updateStatus(id, status)
}

func (f *fakeFriendRepo) UpdateRequestStatus(ctx context.Context, id string, status string) error {
	return f.updateStatus(id, status)
}

func (f *fakeFriendRepo) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.edges[[2]int64{userA, userB}], nil
}

func (f *fakeFriendRepo) AreFriendsTx(ctx context.Context, tx *sql.Tx, userA, userB int64) (bool, error) {
	return f.AreFriends(ctx, userA, userB)
}

func (f *fakeFriendRepo) AddFriendshipTx(ctx context.Context, tx *sql.Tx, userA, userB int64) error {
	f.befriend(userA, userB)
	return nil
}

func (f *fakeFriendRepo) RemoveFriendshipTx(ctx context.Context, tx *sql.Tx, userA, userB int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.edges, [2]int64{userA, userB})
	delete(f.edges, [2]int64{userB, userA})
	return nil
}

func (f *fakeFriendRepo) ListFriends(ctx context.Context, userID int64) ([]*models.Friend, error) {
	return nil, nil
}

func (f *fakeFriendRepo) ListIncomingRequests(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	return nil, nil
}

func (f *fakeFriendRepo) ListOutgoingRequests(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	delivered map[int64]int64
	orders    []*models.Order
	statuses  map[int64]string
}

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{delivered: make(map[int64]int64), statuses: make(map[int64]string)}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = int64(len(f.orders) + 1)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, storage.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListOrders(ctx context.Context) ([]*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
			f.statuses[id] = status
			return nil
		}
	}
	return storage.ErrOrderNotFound
}

func (f *fakeOrderRepo) CountDeliveredByUserID(ctx context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.delivered[userID], nil
}

type fakeCouponRepo struct {
	coupons map[string]*models.Coupon
}

var _ storage.CouponStorage = (*fakeCouponRepo)(nil)

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: make(map[string]*models.Coupon)}
}

func (f *fakeCouponRepo) CreateCoupon(ctx context.Context, c *models.Coupon) (*models.Coupon, error) {
	c.ID = int64(len(f.coupons) + 1)
	f.coupons[c.Code] = c
	return c, nil
}

func (f *fakeCouponRepo) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	c, ok := f.coupons[code]
	if !ok {
		return nil, storage.ErrCouponNotFound
	}
	return c, nil
}

func (f *fakeCouponRepo) ListCoupons(ctx context.Context) ([]*models.Coupon, error) {
	var out []*models.Coupon
	for _, c := range f.coupons {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCouponRepo) SetCouponActive(ctx context.Context, code string, active bool) error {
	c, ok := f.coupons[code]
	if !ok {
		return storage.ErrCouponNotFound
	}
	c.IsActive = active
	return nil
}

func (f *fakeCouponRepo) DeleteCoupon(ctx context.Context, code string) error {
	if _, ok := f.coupons[code]; !ok {
		return storage.ErrCouponNotFound
	}
	delete(f.coupons, code)
	return nil
}

type fakePusher struct {
	mu        sync.Mutex
	batchSize int
	sent      []string
	batches   [][]string
}

func newFakePusher(batchSize int) *fakePusher {
	return &fakePusher{batchSize: batchSize}
}

func (f *fakePusher) Send(ctx context.Context, token, title, body string, data map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, token)
	return nil
}

func (f *fakePusher) SendBatch(ctx context.Context, tokens []string, title, body string, data map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, tokens)
	f.sent = append(f.sent, tokens...)
	return nil
}

func (f *fakePusher) Chunk(tokens []string) [][]string {
	var chunks [][]string
	for len(tokens) > 0 {
		n := f.batchSize
		if n > len(tokens) {
			n = len(tokens)
		}
		chunks = append(chunks, tokens[:n])
		tokens = tokens[n:]
	}
	return chunks
}
