package model

type Category struct {
	ID   int64  `json:"id_key"`
	Name string `json:"name"`
}
