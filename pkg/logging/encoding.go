package logging

import (
	"log/slog"
	"strings"
)

// Encoding selects the wire format a logger renders records in
type Encoding string

const (
	// EncodingJSON renders one JSON object per record
	EncodingJSON Encoding = "json"
	// EncodingLogfmt renders key=value pairs, one record per line
	EncodingLogfmt Encoding = "logfmt"
	// EncodingPlain renders only the (capitalized) message, no structured fields
	EncodingPlain Encoding = "plain"
)

// LevelUnknown is returned by LevelFromString for input that doesn't match a known level
const LevelUnknown = slog.Level(127)

// LevelFromString parses a level name (case-insensitive) into its slog.Level. It
// returns LevelUnknown if the name isn't recognized
func LevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case debugLevel:
		return LevelDebug
	case infoLevel:
		return LevelInfo
	case warnLevel:
		return LevelWarn
	case errorLevel:
		return LevelError
	case fatalLevel:
		return LevelFatal
	case panicLevel:
		return LevelPanic
	default:
		return LevelUnknown
	}
}
