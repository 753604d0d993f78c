package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fiturae/internal/handler/response"
	repo "fiturae/internal/repository/interfaces"
	useruc "fiturae/internal/usecase/user"
)

const msgUserUnknown = "The user is unknown"

// Handler обрабатывает HTTP-запросы каталога пользователей.
type Handler struct {
	users useruc.Service
}

// NewHandler создаёт новый UserHandler.
func NewHandler(users useruc.Service) *Handler {
	return &Handler{users: users}
}

// AddUser godoc
// @Summary      Зарегистрировать пользователя
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      DetailsRequest  true  "Пользователь"
// @Success      200   {object}  Response
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      409   {object}  response.ErrorEnvelope
// @Router       /api/users [post]
func (h *Handler) AddUser(c *gin.Context) {
	var req DetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Некорректное тело запроса", err.Error())
		return
	}

	u, err := h.users.AddUser(c.Request.Context(), useruc.Details{
		Name:     req.Name,
		Email:    req.Email,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, repo.ErrEmailExists) {
			log.Printf("email conflict in AddUser: email=%s", req.Email)
			response.Error(c, http.StatusConflict, response.CodeEmailAlreadyExists, "Указанный email уже используется", nil)
			return
		}
		log.Printf("internal error in AddUser: err=%v", err)
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, toResponse(u))
}

// GetUserByID godoc
// @Summary      Пользователь по идентификатору
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Идентификатор пользователя"
// @Success      200  {object}  Response
// @Failure      404  {string}  string  "The user is unknown"
// @Router       /api/users/{id} [get]
func (h *Handler) GetUserByID(c *gin.Context) {
	id := c.Param("id")

	u, err := h.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, useruc.ErrUserNotFound) {
			log.Printf("user not found in GetUserByID: user_id=%s", id)
			response.Text(c, http.StatusNotFound, msgUserUnknown)
			return
		}
		log.Printf("internal error in GetUserByID: user_id=%s err=%v", id, err)
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, toResponse(u))
}
