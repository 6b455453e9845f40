// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles is the set of independent role flags a user may hold.
// A user can carry any combination simultaneously (an editor who also
// authors papers, a reviewer who is the editor-in-chief, etc.).
type Roles struct {
	Author        bool `bson:"author" json:"author"`
	Reviewer      bool `bson:"reviewer" json:"reviewer"`
	Editor        bool `bson:"editor" json:"editor"`
	EditorInChief bool `bson:"editor_in_chief" json:"editorInChief"`
}

// User represents authors, reviewers, editors, and the editor-in-chief.
//
// NOTE:
//   - Role flags live on the user record and are copied into the actor
//     context at the start of each request. They are mutated only through
//     the admin role-update operation, never implicitly.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Affiliation  string             `bson:"affiliation,omitempty" json:"affiliation,omitempty"`
	Roles        Roles              `bson:"roles" json:"roles"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasEditorialRole reports whether the user holds the editor or
// editor-in-chief role.
func (u *User) HasEditorialRole() bool {
	return u.Roles.Editor || u.Roles.EditorInChief
}
