package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
)

var ErrRequestNotFound = errors.New("friend request not found")

// FriendStorage manages friend requests and the symmetric friendship edge.
// The edge is stored as a pair of rows, both written in one SQL transaction
// so it is never half-present.
type FriendStorage interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	GetRequestByID(ctx context.Context, id string) (*models.FriendRequest, error)
	HasPendingRequest(ctx context.Context, userA, userB int64) (bool, error)
	UpdateRequestStatusTx(ctx context.Context, tx *sql.Tx, id string, status string) error
	UpdateRequestStatus(ctx context.Context, id string, status string) error
	AreFriends(ctx context.Context, userA, userB int64) (bool, error)
	AreFriendsTx(ctx context.Context, tx *sql.Tx, userA, userB int64) (bool, error)
	AddFriendshipTx(ctx context.Context, tx *sql.Tx, userA, userB int64) error
	RemoveFriendshipTx(ctx context.Context, tx *sql.Tx, userA, userB int64) error
	ListFriends(ctx context.Context, userID int64) ([]*models.Friend, error)
	ListIncomingRequests(ctx context.Context, userID int64) ([]*models.FriendRequest, error)
	ListOutgoingRequests(ctx context.Context, userID int64) ([]*models.FriendRequest, error)
}

type friendRepository struct {
	db *sql.DB
}

func NewFriendRepository(db *sql.DB) FriendStorage {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	query := `INSERT INTO friend_requests (id, sender_id, receiver_id, status, created_at)
	          VALUES ($1, $2, $3, $4, NOW())`
	_, err := r.db.ExecContext(ctx, query, req.ID, req.SenderID, req.ReceiverID, req.Status)
	if err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

func (r *friendRepository) GetRequestByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	req := &models.FriendRequest{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, sender_id, receiver_id, status, created_at FROM friend_requests WHERE id = $1", id)
	if err := row.Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *friendRepository) HasPendingRequest(ctx context.Context, userA, userB int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(
	            SELECT 1 FROM friend_requests
	            WHERE status = 'pending'
	              AND ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)))`
	if err := r.db.QueryRowContext(ctx, query, userA, userB).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *friendRepository) UpdateRequestStatusTx(ctx context.Context, tx *sql.Tx, id string, status string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE friend_requests SET status = $1 WHERE id = $2 AND status = 'pending'", status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *friendRepository) UpdateRequestStatus(ctx context.Context, id string, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE friend_requests SET status = $1 WHERE id = $2 AND status = 'pending'", status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM friendships WHERE user_id = $1 AND friend_id = $2)"
	if err := r.db.QueryRowContext(ctx, query, userA, userB).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// AreFriendsTx re-checks the edge inside a transaction, closing the race
// between the UI's view of the friend list and the actual edge.
func (r *friendRepository) AreFriendsTx(ctx context.Context, tx *sql.Tx, userA, userB int64) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM friendships WHERE user_id = $1 AND friend_id = $2)"
	if err := tx.QueryRowContext(ctx, query, userA, userB).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *friendRepository) AddFriendshipTx(ctx context.Context, tx *sql.Tx, userA, userB int64) error {
	query := `INSERT INTO friendships (user_id, friend_id, created_at)
	          VALUES ($1, $2, NOW()), ($2, $1, NOW())
	          ON CONFLICT DO NOTHING`
	if _, err := tx.ExecContext(ctx, query, userA, userB); err != nil {
		return fmt.Errorf("failed to add friendship: %w", err)
	}
	return nil
}

func (r *friendRepository) RemoveFriendshipTx(ctx context.Context, tx *sql.Tx, userA, userB int64) error {
	query := `DELETE FROM friendships
	          WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`
	if _, err := tx.ExecContext(ctx, query, userA, userB); err != nil {
		return fmt.Errorf("failed to remove friendship: %w", err)
	}
	return nil
}

func (r *friendRepository) ListFriends(ctx context.Context, userID int64) ([]*models.Friend, error) {
	query := `
		SELECT u.id, u.email, u.full_name, f.created_at
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query friends: %w", err)
	}
	defer rows.Close()

	var friends []*models.Friend
	for rows.Next() {
		f := &models.Friend{}
		if err := rows.Scan(&f.UserID, &f.Email, &f.FullName, &f.Since); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return friends, nil
}

func (r *friendRepository) ListIncomingRequests(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	return r.listRequests(ctx, "receiver_id", userID)
}

func (r *friendRepository) ListOutgoingRequests(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	return r.listRequests(ctx, "sender_id", userID)
}

func (r *friendRepository) listRequests(ctx context.Context, column string, userID int64) ([]*models.FriendRequest, error) {
	query := fmt.Sprintf(`
		SELECT id, sender_id, receiver_id, status, created_at
		FROM friend_requests
		WHERE %s = $1 AND status = 'pending'
		ORDER BY created_at DESC`, column)
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query friend requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.FriendRequest
	for rows.Next() {
		req := &models.FriendRequest{}
		if err := rows.Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
