package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, session JWT'sinin payload'ı.
//
// jwt.RegisteredClaims embed edilir: exp, iat, iss, sub gibi standart claim'ler
// buradan gelir. UserID ayrıca "userId" olarak da taşınır (mevcut client'lar bu alanı okur).
type TokenClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
