package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims for authenticated app users
type UserClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for user login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
}
