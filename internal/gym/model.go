package gym

import "time"

type Gym struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateGymRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address" validate:"max=255"`
}
