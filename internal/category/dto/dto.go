package dto

type CreateCategoryInput struct {
	Name string
}

// CategoryPayload is the body of POST /categories.
type CategoryPayload struct {
	Name string `json:"name"`
}
