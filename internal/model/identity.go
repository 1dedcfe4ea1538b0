package model

// Identity is the authenticated principal held by the session. String fields are
// never absent: a missing value is the empty string.
type Identity struct {
	ID        int64  `json:"id_key"`
	Name      string `json:"name"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	IsAdmin   bool   `json:"is_admin"`
}

// FullName is the display form used by the CLI.
func (i Identity) FullName() string {
	if i.LastName == "" {
		return i.Name
	}
	return i.Name + " " + i.LastName
}
