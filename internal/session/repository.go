package session

import "context"

// Storage keys. Values are always strings; booleans are "true"/"false".
const (
	KeyUserID        = "user_id"
	KeyUserName      = "user_name"
	KeyUserLastName  = "user_lastname"
	KeyUserEmail     = "user_email"
	KeyUserTelephone = "user_telephone"
	KeyUserIsAdmin   = "user_is_admin"
	KeyCart          = "cart"
)

var IdentityKeys = []string{
	KeyUserID,
	KeyUserName,
	KeyUserLastName,
	KeyUserEmail,
	KeyUserTelephone,
	KeyUserIsAdmin,
}

type Repository interface {
	LoadAll(ctx context.Context) (map[string]string, error)
	// SaveAll upserts every pair in one transaction.
	SaveAll(ctx context.Context, values map[string]string) error
	// Delete removes the keys in one transaction; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
