package keycipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipherRoundTrip(t *testing.T) {
	c, err := New("shared-transit-secret")
	require.NoError(t, err)

	keys := []string{
		"sk-live-abcdef0123456789",
		"hf_tokenWithMixedCase",
		"",
		"key with spaces and ünïcode",
	}
	for _, key := range keys {
		sealed, err := c.EncryptForTransit(key)
		require.NoError(t, err)
		assert.NotEqual(t, key, sealed)

		plain, err := c.Decrypt(sealed)
		require.NoError(t, err)
		assert.Equal(t, key, plain)
	}
}

func TestCipherNonceFreshness(t *testing.T) {
	c, err := New("shared-transit-secret")
	require.NoError(t, err)

	// same plaintext, different ciphertexts
	a, err := c.EncryptForTransit("sk-live-abcdef")
	require.NoError(t, err)
	b, err := c.EncryptForTransit("sk-live-abcdef")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCipherRejects(t *testing.T) {
	c, err := New("shared-transit-secret")
	require.NoError(t, err)

	t.Run("empty secret", func(t *testing.T) {
		_, err := New("   ")
		assert.ErrorIs(t, err, ErrEmptySecret)
	})

	t.Run("garbage base64", func(t *testing.T) {
		_, err := c.Decrypt("%%% not base64 %%%")
		assert.ErrorIs(t, err, ErrMalformedCiphertext)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		_, err := c.Decrypt("AAAA")
		assert.ErrorIs(t, err, ErrMalformedCiphertext)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := New("a-different-secret")
		require.NoError(t, err)

		sealed, err := c.EncryptForTransit("sk-live-abcdef")
		require.NoError(t, err)

		_, err = other.Decrypt(sealed)
		assert.ErrorIs(t, err, ErrMalformedCiphertext)
	})
}
