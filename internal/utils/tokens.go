package utils

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
)

func NewResetToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 16 // 128 бит по умолчанию
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewAccountAPIKey - ключ по умолчанию, выдаётся один раз при регистрации.
func NewAccountAPIKey() (string, error) {
	return NewResetToken(24)
}

// NewManagedAPIKey - именованные ключи с префиксом sk-.
func NewManagedAPIKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sk-" + hex.EncodeToString(b), nil
}
