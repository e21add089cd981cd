// Package identity issues ids for users created without one.
package identity

import (
	"github.com/google/uuid"

	"github.com/Apurer/user-service/internal/users/ports"
)

// Generator produces random version-4 UUIDs.
type Generator struct{}

func (Generator) NewID() string {
	return uuid.NewString()
}

var _ ports.IDGenerator = Generator{}
