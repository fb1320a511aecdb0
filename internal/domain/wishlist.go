package domain

type WishlistEntry struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
}
