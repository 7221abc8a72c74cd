// Copyright 2025 GyanFactory
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package keycipher obfuscates vendor API keys for transit between the
// client and the ingestion pipeline.
//
// This is transport obfuscation with a static shared secret, NOT a security
// boundary: anyone holding the secret can decrypt. Its purpose is to keep
// raw keys out of request logs and casual captures. Raw credentials are
// never persisted; decrypted keys live only for the duration of a request.
package keycipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

var (
	// ErrEmptySecret indicates a blank shared secret.
	ErrEmptySecret = errors.New("cipher secret required")

	// ErrMalformedCiphertext indicates input that is not a product of
	// EncryptForTransit (bad base64, truncated, or tampered).
	ErrMalformedCiphertext = errors.New("malformed key ciphertext")
)

// Cipher seals and opens vendor API keys with AES-256-GCM. The key is
// derived from the shared secret with BLAKE2b-256, so any secret string
// yields a full-size key.
type Cipher struct {
	aead cipher.AEAD
}

// New creates a Cipher from the static shared secret.
func New(secret string) (*Cipher, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}

	h, err := blake2b.New(32, nil)
	if err != nil {
		return nil, err
	}
	h.Write([]byte(secret))
	key := h.Sum(nil)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// EncryptForTransit seals the plaintext key under a random nonce and returns
// the base64 transport form.
func (c *Cipher) EncryptForTransit(plain string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a transport-form ciphertext produced by EncryptForTransit.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedCiphertext, err)
	}
	if len(raw) < c.aead.NonceSize() {
		return "", ErrMalformedCiphertext
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedCiphertext, err)
	}
	return string(plain), nil
}
