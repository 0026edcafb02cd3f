package user

import (
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/auth"
)

// User is a staff account. Members of the gym are not users.
type User struct {
	ID           int64     `db:"id" json:"id"`
	GymID        int64     `db:"gym_id" json:"gym_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         auth.Role `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func (u *User) Identity() auth.Identity {
	return auth.Identity{UserID: u.ID, GymID: u.GymID, Email: u.Email, Role: u.Role}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// StaffRequest is the admin payload for adding an account to the admin's own
// gym.
type StaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type CreateStaffRequest struct {
	GymID    int64     `validate:"required,gt=0"`
	Name     string    `validate:"required"`
	Email    string    `validate:"required,email"`
	Password string    `validate:"required,min=8"`
	Role     auth.Role `validate:"required,oneof=admin staff"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
