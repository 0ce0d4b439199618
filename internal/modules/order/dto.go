package order

type CreateOrderRequest struct {
	OfferDetailID int64 `json:"offer_detail_id" binding:"required,gt=0"`
}
