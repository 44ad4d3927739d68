// Package secrets encrypts credentials that must be stored at rest,
// such as the exchange-rate provider API key.
package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Codec encrypts and decrypts short secrets with a fernet key.
type Codec struct {
	key *fernet.Key
}

// NewCodec creates a Codec from a base64-encoded fernet key.
func NewCodec(encodedKey string) (*Codec, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &Codec{key: key}, nil
}

// Encrypt returns the fernet token for the given plaintext.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens do not expire; the
// stored secret stays valid until replaced.
func (c *Codec) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{c.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt secret: invalid token")
	}
	return string(plaintext), nil
}
