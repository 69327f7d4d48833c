package config

import (
	"io"
	"time"
)

// TimeConfig retrieves duration values stored as plain integers. The
// method name carries the unit, so "ttl: 30" read through GetMinute
// yields 30 minutes.
type TimeConfig interface {
	// GetSecond returns the value for key interpreted as seconds.
	GetSecond(key string) time.Duration

	// GetMinute returns the value for key interpreted as minutes.
	GetMinute(key string) time.Duration

	// GetHour returns the value for key interpreted as hours.
	GetHour(key string) time.Duration

	// GetDay returns the value for key interpreted as days (24h).
	GetDay(key string) time.Duration
}

// SignedIntConfig retrieves signed integer values. Missing keys or
// values that fail conversion resolve to the type's zero value.
type SignedIntConfig interface {
	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt32 returns the value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64
}

// UnsignedIntConfig retrieves unsigned integer values. Missing keys or
// values that fail conversion resolve to the type's zero value.
type UnsignedIntConfig interface {
	// GetUint returns the value for key as a uint.
	GetUint(key string) uint

	// GetUint16 returns the value for key as a uint16.
	GetUint16(key string) uint16

	// GetUint32 returns the value for key as a uint32.
	GetUint32(key string) uint32

	// GetUint64 returns the value for key as a uint64.
	GetUint64(key string) uint64
}

// FloatConfig retrieves floating-point values. Missing keys or values
// that fail conversion resolve to zero.
type FloatConfig interface {
	// GetFloat32 returns the value for key as a float32.
	GetFloat32(key string) float32

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64
}

// Config is the read-side of application configuration. Lookups never
// fail; implementations fall back to zero values so callers can treat
// every key as optional with a sensible default.
type Config interface {
	io.Closer
	TimeConfig
	SignedIntConfig
	UnsignedIntConfig
	FloatConfig

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetBinary returns the value for key decoded from base64,
	// or nil when decoding fails.
	GetBinary(key string) []byte

	// GetArray returns the value for key split on commas:
	// <element1>,<element2>,...
	GetArray(key string) []string

	// GetMap returns the value for key parsed as
	// <key1>:<value1>,<key2>:<value2>,...
	GetMap(key string) map[string]string
}
