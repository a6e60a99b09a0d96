package share

import (
	"github.com/momentumapp/momentum-lambda/internal/goal"
	"github.com/momentumapp/momentum-lambda/internal/journal"
	"github.com/momentumapp/momentum-lambda/internal/user"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(db *gorm.DB, userRepo user.UserRepository, goalRepo goal.Repository, journalRepo journal.Repository) *Container {
	repo := NewRepository(db)
	service := NewService(repo, userRepo, goalRepo, journalRepo)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
