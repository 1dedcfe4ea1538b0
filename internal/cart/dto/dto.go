package dto

// ItemPayload is the body of POST and PUT /cart/{user_id}/items.
type ItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
