package dto

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileInput struct {
	Name      string
	LastName  string
	Email     string
	Telephone string
}

// ClientPayload is the body of PUT /clients/id/{id}.
type ClientPayload struct {
	Name      string `json:"name"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}
