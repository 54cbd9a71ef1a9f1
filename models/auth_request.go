package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validation kuralları: sabitler.
const (
	MinPasswordLength = 6
	// MaxPasswordBytes: bcrypt 72 byte'tan uzun girdiyi kabul etmez.
	MaxPasswordBytes = 72
	MaxFullNameChars = 50
)

// Client'a aynen dönen validation mesajları.
const (
	MsgAllFieldsRequired   = "All fields are required"
	MsgPasswordsMismatch   = "Passwords do not match"
	MsgPasswordTooShort    = "Password must be at least 6 characters long"
	MsgPasswordTooLong     = "Password cannot exceed 72 bytes"
	MsgInvalidEmail        = "Please enter a valid email"
	MsgFullNameTooLong     = "Full name cannot exceed 50 characters"
	MsgCredentialsRequired = "Email and password are required"

	MsgAccountExists      = "User already exists with this email"
	MsgInvalidCredentials = "Invalid email or password"
)

// validate, go-playground/validator instance'ı.
// *validator.Validate thread-safe'tir ve struct cache'i tuttuğu için tek instance paylaşılır.
var validate = validator.New()

// SignupRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alırız: hash'leme service katmanında yapılır.
type SignupRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate, SignupRequest'in geçerli olup olmadığını kontrol eder.
//
// Kontrol sırası önemli: ilk başarısız kural döner:
//  1. Tüm alanlar dolu mu
//  2. Şifreler eşleşiyor mu
//  3. Şifre en az 6 karakter mi
//  4. Şifre 72 byte'ı aşıyor mu, email formatı, isim uzunluğu
//
// FullName ve Email kırpılır (trim); Email ayrıca normalize edilir.
// Şifreye dokunulmaz: boşluk da şifrenin parçasıdır.
func (r *SignupRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = NormalizeEmail(r.Email)

	if r.FullName == "" || r.Email == "" || r.Password == "" || r.ConfirmPassword == "" {
		return errors.New(MsgAllFieldsRequired)
	}

	if r.Password != r.ConfirmPassword {
		return errors.New(MsgPasswordsMismatch)
	}

	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return errors.New(MsgPasswordTooShort)
	}

	if len(r.Password) > MaxPasswordBytes {
		return errors.New(MsgPasswordTooLong)
	}

	if err := validate.Var(r.Email, "email"); err != nil {
		return errors.New(MsgInvalidEmail)
	}

	if utf8.RuneCountInString(r.FullName) > MaxFullNameChars {
		return errors.New(MsgFullNameTooLong)
	}

	return nil
}

// SigninRequest, giriş yaparken gelen veri.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, email ve şifrenin dolu olduğunu kontrol eder.
// Format kontrolü YAPILMAZ: geçersiz email zaten hiçbir hesapla eşleşmez
// ve "Invalid email or password" döner.
func (r *SigninRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)

	if r.Email == "" || r.Password == "" {
		return errors.New(MsgCredentialsRequired)
	}
	return nil
}
