package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User holds the account record together with the embedded snapshots of all
// tasks assigned to this user's email.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Password  string             `bson:"password" json:"-" validate:"required"`
	Role      string             `bson:"role" json:"role" validate:"omitempty,oneof=admin employee"`
	Tasks     []TaskSnapshot     `bson:"tasks" json:"tasks"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserUpdate carries a partial profile update. Empty fields are left
// untouched.
type UserUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"omitempty,oneof=admin employee"`
}
