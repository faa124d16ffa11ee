package model

import "time"

// EncryptedPayload is an opaque ciphertext and nonce pair. The relay checks
// structural presence only; it never decrypts or inspects content.
type EncryptedPayload struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
}

// Valid reports whether both components are present.
func (p EncryptedPayload) Valid() bool {
	return p.Ciphertext != "" && p.Nonce != ""
}

// Message is one encrypted envelope in a session's append-only ledger.
// Immutable after creation; destroyed en masse when the session burns.
type Message struct {
	ID       string           `json:"id"`
	SenderID string           `json:"senderId"`
	Kind     MessageKind      `json:"kind"`
	Payload  EncryptedPayload `json:"payload"`
	FileName string           `json:"fileName,omitempty"`
	SentAt   time.Time        `json:"sentAt"`
}

type PostMessageParams struct {
	SenderID string
	Kind     string
	Payload  EncryptedPayload
	FileName string
}
