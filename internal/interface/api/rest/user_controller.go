package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/application/services"
	"user-registry-api/internal/interface/api/rest/dto/user"
	"user-registry-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r gin.IRouter,
	userService ports.UserService,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.POST(RouteRegister, uc.RegisterUserHandler)
	r.GET(RouteUser, uc.GetUserHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	users, err := uc.userService.FindUsers(c.Request.Context())
	if err != nil {
		uc.fail(c, err, "failed to get users", "FindUsers() error")
		return
	}

	c.JSON(http.StatusOK, users)
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), uuid)
	if err != nil {
		uc.fail(c, err, "failed to get a user", "FindUserByID() error")
		return
	}

	c.JSON(http.StatusOK, u)
}

func (uc *UserController) RegisterUserHandler(c *gin.Context) {
	var req user.Request
	// for a good boost of performance(x3 minimum) and to avoid reflection under the hood
	// better to use codegen for marshal/unmarshal for example:
	// https://github.com/mailru/easyjson
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateRegistration(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		uc.fail(c, err, "failed to register a user", "RegisterUser() error")
		return
	}

	c.JSON(http.StatusCreated, u)
}

// fail renders service rejections as-is and hides everything else behind a
// fixed 500 message.
func (uc *UserController) fail(c *gin.Context, err error, internalMsg, logMsg string) {
	var reqErr *services.InvalidRequestError
	if errors.As(err, &reqErr) {
		c.JSON(reqErr.Status, gin.H{"error": reqErr.Reason})
		return
	}

	uc.logger.Error(logMsg, zap.Error(err))
	c.JSON(
		http.StatusInternalServerError,
		gin.H{"error": internalMsg},
	)
}
