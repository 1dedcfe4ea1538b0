package dto

type ProductFilters struct {
	IncludeInactive bool
	Limit           int
}
