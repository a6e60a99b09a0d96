package main

import (
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/momentumapp/momentum-lambda/internal/config"
	"github.com/momentumapp/momentum-lambda/internal/container"
	"github.com/momentumapp/momentum-lambda/internal/router"
)

func main() {
	c := container.New()

	mux := router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		GoalHandler:    c.GoalContainer.Handler,
		JournalHandler: c.JournalContainer.Handler,
		ShareHandler:   c.ShareContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := chiadapter.New(mux)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	config.Logger().Infof("Listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		config.Logger().WithError(err).Fatal("Server stopped")
	}
}
