// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// CredentialsReq is the request body shared by /register and /login.
// Field names follow the existing client: userName and userPassword.
type CredentialsReq struct {
	UserName     string `json:"userName" binding:"required"`
	UserPassword string `json:"userPassword" binding:"required"`
}
