package model

// GenerateRequest represents a password generation request. With no class
// selected and All unset, passwords are digits only.
type GenerateRequest struct {
	Length    int  `json:"length"`
	All       bool `json:"all"`
	Lowercase bool `json:"lowercase"`
	Uppercase bool `json:"uppercase"`
	Digits    bool `json:"digits"`
	Special   bool `json:"special"`
	Count     int  `json:"count"`
	Hash      bool `json:"hash"`
}

// GeneratedPassword is a single generated password, optionally with its
// Argon2id hash.
type GeneratedPassword struct {
	Password string `json:"password"`
	Hash     string `json:"hash,omitempty"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Length    int                 `json:"length"`
	Classes   []string            `json:"classes"`
	Passwords []GeneratedPassword `json:"passwords"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
