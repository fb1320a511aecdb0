package wishlist

import (
	"context"
	"errors"
)

var (
	ErrAlreadyExists = errors.New("product already in wishlist")
	ErrNotInWishlist = errors.New("product not in wishlist")
)

type Repository interface {
	// Add stores the (user, product) pair; ErrAlreadyExists when it is
	// already there (the store stays unchanged).
	Add(ctx context.Context, userID, productID int64) error

	// Remove deletes the pair; ErrNotInWishlist when it does not exist.
	Remove(ctx context.Context, userID, productID int64) error

	ListProductIDs(ctx context.Context, userID int64) ([]int64, error)
}
