package uid

import (
	"crypto/sha256"
	"os"

	"github.com/bwmarrin/snowflake"
)

// NumberID generates unique int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}

// Snowflake generates time-ordered int64 IDs with a node component
// derived from the host identity, so replicas do not collide.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a snowflake generator whose node number is
// derived from the machine identity (machine-id or hostname).
func NewSnowflake() (*Snowflake, error) {
	src, err := stableNodeIdentity()
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256([]byte(src))
	nodeNum := int64(sum[0])<<2 | int64(sum[1])>>6 // 10 bits

	node, err := snowflake.NewNode(nodeNum % 1024)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique int64 ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func stableNodeIdentity() (string, error) {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil && len(b) > 0 {
		return string(b), nil
	}

	h, err := os.Hostname()
	if err != nil || h == "" {
		return "", ErrStableNodeIdentityUnavailable
	}
	return h, nil
}
