package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

var warnMissingSecretOnce sync.Once

func verifyWebhookSignature(body []byte, headerSignature, secret string, logger *slog.Logger) (bool, error) {
	if strings.TrimSpace(secret) == "" {
		warnMissingSecretOnce.Do(func() {
			logger.Warn("webhook signature verification disabled: no webhook secret configured")
		})
		return true, nil
	}

	if headerSignature == "" {
		return false, errors.New("missing X-Hub-Signature-256 header")
	}

	const prefix = "sha256="
	if !strings.HasPrefix(headerSignature, prefix) {
		return false, errors.New("invalid signature prefix")
	}

	hexSig := strings.TrimPrefix(headerSignature, prefix)
	provided, err := hex.DecodeString(hexSig)
	if err != nil {
		return false, errors.New("invalid signature encoding")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := mac.Sum(nil)

	if !hmac.Equal(expected, provided) {
		return false, errors.New("signature mismatch")
	}

	return true, nil
}
