package service

import "errors"

// Sentinel errors returned to handlers, which map them to HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")

	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrUnknownPackage         = errors.New("unknown coin package")
	ErrWithdrawalBelowMinimum = errors.New("withdrawal amount below minimum")
	ErrSelfTransfer           = errors.New("cannot transfer to yourself")

	ErrNotFriends            = errors.New("users are not friends")
	ErrAlreadyFriends        = errors.New("users are already friends")
	ErrRequestAlreadyPending = errors.New("friend request already pending")
	ErrNotRequestReceiver    = errors.New("only the receiver can resolve a request")
	ErrRequestResolved       = errors.New("friend request already resolved")

	ErrCouponInactive = errors.New("coupon is not active")
	ErrCouponExpired  = errors.New("coupon has expired")

	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrNotReelOwner      = errors.New("only the owner can delete a reel")
	ErrFlashSaleInactive = errors.New("no active flash sale")
)
