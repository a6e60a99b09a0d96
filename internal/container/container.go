package container

import (
	"context"
	"log"
	"os"

	"github.com/momentumapp/momentum-lambda/internal/auth"
	"github.com/momentumapp/momentum-lambda/internal/config"
	"github.com/momentumapp/momentum-lambda/internal/goal"
	"github.com/momentumapp/momentum-lambda/internal/journal"
	"github.com/momentumapp/momentum-lambda/internal/share"
	"github.com/momentumapp/momentum-lambda/internal/user"
)

type Container struct {
	UserContainer    *user.UserContainer
	GoalContainer    *goal.Container
	JournalContainer *journal.Container
	ShareContainer   *share.Container
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&goal.Goal{},
		&goal.Activity{},
		&journal.Entry{},
		&share.Share{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	goalContainer := goal.NewContainer(config.DB)
	journalContainer := journal.NewContainer(config.DB)
	shareContainer := share.NewContainer(
		config.DB,
		userContainer.Repo,
		goalContainer.Repo,
		journalContainer.Repo,
	)

	return &Container{
		UserContainer:    userContainer,
		GoalContainer:    goalContainer,
		JournalContainer: journalContainer,
		ShareContainer:   shareContainer,
	}
}
