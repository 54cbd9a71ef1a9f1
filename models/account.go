// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Veritabanındaki bir tablonun Go karşılığıdır.
// Aynı zamanda API'den gelen/giden verilerin şeklini de belirler.
//
// Go'da `json:"fullName"` gibi tag'ler, struct field'larının JSON'a
// nasıl serialize/deserialize edileceğini belirler.
package models

import (
	"strings"
	"time"
)

// Account, kayıtlı bir kullanıcıyı temsil eder.
//
// Email her zaman NormalizeEmail'den geçmiş haliyle saklanır,
// unique constraint ve lookup bu normalize değer üzerinden çalışır.
type Account struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // json:"-" → API response'a DAHİL ETME (güvenlik!)
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLogin,omitempty"` // *time.Time = nullable: henüz hiç signin olmadıysa nil
	LoginCount   int        `json:"-"`
}

// PublicAccount, account'un client'a dönen görünümü.
// Password hash ve iç sayaçlar bu struct'ta hiç YOK: yanlışlıkla serialize edilemezler.
type PublicAccount struct {
	ID        string     `json:"id"`
	FullName  string     `json:"fullName"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Public, account'un public görünümünü döner.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		FullName:  a.FullName,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLoginAt,
	}
}

// NormalizeEmail, email'i karşılaştırma ve saklama için normalize eder:
// baştaki/sondaki boşluklar kırpılır, küçük harfe çevrilir.
// "Ada@X.com " ve "ada@x.com" aynı hesabı temsil eder.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
