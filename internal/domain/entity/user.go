// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique account.
// The same account can act as a buyer or a seller; the Role label is
// informational and never gates behavior.
type User struct {
	ID        uuid.UUID // The unique identifier for the user, assigned by storage.
	Name      string    // The user's display name, denormalized onto orders at checkout.
	Email     string    // The user's primary contact email, used as the login identifier.
	Role      Role      // Informational role label chosen at registration ("buyer" or "seller").
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}
