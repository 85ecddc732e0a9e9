package discord

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
)

// Verify checks the ed25519 interaction signature that the chat platform
// attaches to webhook requests. The request body is restored so later
// handlers can still read it.
func Verify(r *http.Request, key ed25519.PublicKey) error {
	signature := r.Header.Get("X-Signature-Ed25519")
	if signature == "" {
		return fmt.Errorf("signature can not empty")
	}

	sig, err := hex.DecodeString(signature)
	if err != nil {
		return err
	}

	if len(sig) != ed25519.SignatureSize || sig[63]&224 != 0 {
		return fmt.Errorf("signature is not valid")
	}

	timestamp := r.Header.Get("X-Signature-Timestamp")
	if timestamp == "" {
		return fmt.Errorf("timestamp can not empty")
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	body := append([]byte(timestamp), bodyBytes...)
	if !ed25519.Verify(key, body, sig) {
		return fmt.Errorf("signature is not valid")
	}

	return nil
}
