package config

import "time"

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Device image-quota counters reset once this much time has passed
// since the last reset.
const QuotaResetInterval = 24 * time.Hour

// Sender recorded on messages posted without a senderId.
const UnknownSender = "unknown"
