package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultProfilePicture is assigned on registration and is never deleted
// from object storage when a user uploads their own picture.
const DefaultProfilePicture = "/assets/default-avatar.png"

// Auth providers for a user account.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents a user document in the users collection.
//
// RefreshTokens holds every currently-valid refresh token for the user, one
// per device/session. Login appends, refresh atomically swaps, logout
// removes. Insertion order carries no meaning.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"passwordHash,omitempty" json:"-"`
	AuthProvider   string             `bson:"authProvider" json:"-"`
	Headline       string             `bson:"headline,omitempty" json:"headline,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Website        string             `bson:"website,omitempty" json:"website,omitempty"`
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`
	JoinDate       time.Time          `bson:"joinDate" json:"joinDate"`
	RefreshTokens  []string           `bson:"refreshTokens" json:"-"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DisplayName is the denormalized sender name stamped onto posts and
// comments at write time.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// IsExternal reports whether the account was provisioned by an external
// identity provider. Such accounts have no usable password.
func (u *User) IsExternal() bool {
	return u.AuthProvider != "" && u.AuthProvider != ProviderLocal
}
