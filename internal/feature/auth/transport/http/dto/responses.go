package dto

// MessageRes carries a human-readable confirmation or greeting.
type MessageRes struct {
	Message string `json:"message"`
}

// TokenRes is returned by a successful /login.
type TokenRes struct {
	AccessToken string `json:"access_token"`
}

// ErrorRes is the body of every non-2xx response.
type ErrorRes struct {
	Error string `json:"error"`
}
