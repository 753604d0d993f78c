package workout

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "fiturae/internal/domain/workout"
	"fiturae/internal/handler/response"
	workoutuc "fiturae/internal/usecase/workout"
)

// Тексты доменных 404.
const (
	msgUserUnknown    = "The user is unknown"
	msgWorkoutUnknown = "The workout is unknown"
)

// Handler обрабатывает HTTP-запросы к тренировкам.
type Handler struct {
	workouts workoutuc.Service
}

// NewHandler создаёт новый WorkoutHandler.
func NewHandler(workouts workoutuc.Service) *Handler {
	return &Handler{workouts: workouts}
}

// AddWorkout godoc
// @Summary      Создать тренировку
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Param        body  body      DetailsRequest  true  "Тренировка"
// @Success      200   {object}  Response
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      404   {string}  string  "The user is unknown"
// @Router       /api/workouts [post]
func (h *Handler) AddWorkout(c *gin.Context) {
	var req DetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Некорректное тело запроса", err.Error())
		return
	}

	day, err := domain.ParseDay(req.Day)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Некорректный день тренировки", req.Day)
		return
	}

	w, err := h.workouts.AddWorkout(c.Request.Context(), domain.Details{
		UserID:      req.UserID,
		Name:        req.Name,
		Day:         day,
		Description: req.Description,
		Plan:        req.Plan,
	})
	if err != nil {
		h.fail(c, "AddWorkout", err, "user_id", req.UserID)
		return
	}

	c.JSON(http.StatusOK, toResponse(w))
}

// GetAllWorkoutsByUserID godoc
// @Summary      Тренировки пользователя
// @Tags         workouts
// @Produce      json
// @Param        userId  path      string  true  "Идентификатор пользователя"
// @Success      200     {array}   Response
// @Failure      404     {string}  string  "The user is unknown"
// @Router       /api/workouts/{userId} [get]
func (h *Handler) GetAllWorkoutsByUserID(c *gin.Context) {
	userID := c.Param("userId")

	workouts, err := h.workouts.GetAllWorkoutsByUserID(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, "GetAllWorkoutsByUserID", err, "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, toResponseList(workouts))
}

// GetWorkoutByID godoc
// @Summary      Тренировка по идентификатору
// @Tags         workouts
// @Produce      json
// @Param        id   path      string  true  "Идентификатор тренировки"
// @Success      200  {object}  Response
// @Failure      404  {string}  string  "The workout is unknown"
// @Router       /api/workouts/details/{id} [get]
func (h *Handler) GetWorkoutByID(c *gin.Context) {
	id := c.Param("id")

	w, err := h.workouts.GetWorkoutByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "GetWorkoutByID", err, "workout_id", id)
		return
	}

	c.JSON(http.StatusOK, toResponse(w))
}

// EditWorkout godoc
// @Summary      Заменить тренировку
// @Description  Название, день, описание и план заменяются целиком. Владелец не меняется.
// @Tags         workouts
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Идентификатор тренировки"
// @Param        body  body      EditRequest  true  "Новые значения"
// @Success      200   {object}  Response
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      404   {string}  string  "The workout is unknown"
// @Router       /api/workouts/{id} [put]
func (h *Handler) EditWorkout(c *gin.Context) {
	id := c.Param("id")

	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Некорректное тело запроса", err.Error())
		return
	}

	day, err := domain.ParseDay(req.Day)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Некорректный день тренировки", req.Day)
		return
	}

	w, err := h.workouts.EditWorkout(c.Request.Context(), id, domain.Edit{
		Name:        req.Name,
		Day:         day,
		Description: req.Description,
		Plan:        req.Plan,
	})
	if err != nil {
		h.fail(c, "EditWorkout", err, "workout_id", id)
		return
	}

	c.JSON(http.StatusOK, toResponse(w))
}

// DeleteWorkout godoc
// @Summary      Удалить тренировку
// @Description  Удаление отсутствующей тренировки тоже возвращает 200.
// @Tags         workouts
// @Param        id   path  string  true  "Идентификатор тренировки"
// @Success      200
// @Router       /api/workouts/{id} [delete]
func (h *Handler) DeleteWorkout(c *gin.Context) {
	id := c.Param("id")

	if err := h.workouts.DeleteWorkout(c.Request.Context(), id); err != nil {
		h.fail(c, "DeleteWorkout", err, "workout_id", id)
		return
	}

	c.Status(http.StatusOK)
}

// fail переводит ошибку сценария в HTTP-ответ.
func (h *Handler) fail(c *gin.Context, op string, err error, key, value string) {
	switch {
	case errors.Is(err, workoutuc.ErrUserNotFound):
		log.Printf("user not found in %s: %s=%s", op, key, value)
		response.Text(c, http.StatusNotFound, msgUserUnknown)
	case errors.Is(err, workoutuc.ErrWorkoutNotFound):
		log.Printf("workout not found in %s: %s=%s", op, key, value)
		response.Text(c, http.StatusNotFound, msgWorkoutUnknown)
	case errors.Is(err, domain.ErrInvalidDay):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Некорректный день тренировки", nil)
	default:
		log.Printf("internal error in %s: %s=%s err=%v", op, key, value, err)
		response.Internal(c)
	}
}
