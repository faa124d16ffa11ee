package model

type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
)

// NormalizeKind coerces any unrecognized kind to text. Only "image" is
// meaningful to the relay; everything else is an opaque text envelope.
func NormalizeKind(kind string) MessageKind {
	if MessageKind(kind) == KindImage {
		return KindImage
	}
	return KindText
}

// BurnReason records which termination path cleared a session.
type BurnReason string

const (
	BurnReasonEnded   BurnReason = "ended"
	BurnReasonExpired BurnReason = "expired"
	BurnReasonStale   BurnReason = "stale"
)
