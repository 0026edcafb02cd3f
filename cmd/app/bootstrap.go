package main

import (
	"context"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/auth"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/config"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/db"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/gym"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/user"

	"github.com/jmoiron/sqlx"
)

// bootstrap creates the first gym and its admin on an empty database. Both
// rows are written in one transaction so a failed admin insert leaves no gym.
func bootstrap(ctx context.Context, database *sqlx.DB, cfg *config.Config) error {
	if cfg.BootstrapAdminEmail == "" {
		return nil
	}

	has, err := user.NewService(user.NewRepository(database), cfg.JWTSecret, cfg.JWTRefresh).HasUsers(ctx)
	if err != nil || has {
		return err
	}

	return db.NewTxManager(database).WithTx(ctx, func(q db.Querier) error {
		g, err := gym.NewService(gym.NewRepository(q)).Create(ctx, gym.CreateGymRequest{Name: cfg.BootstrapGymName})
		if err != nil {
			return err
		}

		admin, err := user.NewService(user.NewRepository(q), cfg.JWTSecret, cfg.JWTRefresh).CreateStaff(ctx, user.CreateStaffRequest{
			GymID:    g.ID,
			Name:     "Administrator",
			Email:    cfg.BootstrapAdminEmail,
			Password: cfg.BootstrapAdminPassword,
			Role:     auth.RoleAdmin,
		})
		if err != nil {
			return err
		}

		logger.Info("Bootstrapped gym and admin", "gym_id", g.ID, "email", admin.Email)
		return nil
	})
}
