package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/identity"
	"github.com/taskvault/taskvault/internal/services"
)

type Handler interface {
	HandleSignUp(c *gin.Context)
	HandleLogIn(c *gin.Context)
	HandleGetProfile(c *gin.Context)
	HandleUpdateProfile(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	verifier identity.TokenVerifier
	users    services.UserService
	tasks    services.TaskService
}

func New(
	logger zerolog.Logger,
	verifier identity.TokenVerifier,
	userService services.UserService,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger:   logger,
		verifier: verifier,
		users:    userService,
		tasks:    taskService,
	}
}
