// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides password hashing and token issuance/verification
// for admin sessions.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for password hashes.
const BcryptCost = 10

// HashPassword creates a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a password against a stored bcrypt hash.
// The comparison is delegated to bcrypt and is not short-circuited.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
