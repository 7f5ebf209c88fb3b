package services

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// SessionCodec builds and deconstructs opaque session tokens of the
// form base64(userID:epochMillis:randomHex). The random component makes
// tokens unique in practice but the codec gives NO integrity or
// authenticity guarantee: the token is not a MAC, carries no signature,
// and the timestamp and nonce are never validated, so a captured token
// stays valid indefinitely. Known weakness, kept for wire compatibility.
type SessionCodec struct{}

// Issue creates a token for the given user id
func (SessionCodec) Issue(userID string) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate session nonce: %w", err)
	}

	raw := fmt.Sprintf("%s:%d:%s", userID, time.Now().UnixMilli(), hex.EncodeToString(nonce))
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// Decode extracts the user id from a token. It fails only when the
// base64 layer is broken or the id field is empty; timestamp and nonce
// are ignored.
func (SessionCodec) Decode(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("malformed session token: %w", err)
	}

	userID := strings.SplitN(string(raw), ":", 2)[0]
	if userID == "" {
		return "", fmt.Errorf("session token has empty user id")
	}

	return userID, nil
}
