package workout

import (
	domain "fiturae/internal/domain/workout"
)

// DetailsRequest: тело POST /api/workouts.
type DetailsRequest struct {
	UserID      string            `json:"userId" binding:"required" example:"583231"`
	Name        string            `json:"name" binding:"required" example:"Leg day"`
	Day         string            `json:"day" binding:"required" example:"FRIDAY"`
	Description string            `json:"description" example:"Heavy squats"`
	Plan        []domain.Exercise `json:"plan" swaggertype:"array,object"`
}

// EditRequest: тело PUT /api/workouts/{id}. Все поля заменяются целиком.
type EditRequest struct {
	Name        string            `json:"name" binding:"required" example:"Upper body"`
	Day         string            `json:"day" binding:"required" example:"MONDAY"`
	Description string            `json:"description" example:""`
	Plan        []domain.Exercise `json:"plan" swaggertype:"array,object"`
}

// Response: представление тренировки в API.
type Response struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Name        string            `json:"name"`
	Day         string            `json:"day"`
	Description string            `json:"description"`
	Plan        []domain.Exercise `json:"plan" swaggertype:"array,object"`
}

func toResponse(w *domain.Workout) Response {
	plan := w.Plan
	if plan == nil {
		plan = []domain.Exercise{}
	}
	return Response{
		ID:          w.ID,
		UserID:      w.UserID,
		Name:        w.Name,
		Day:         w.Day.String(),
		Description: w.Description,
		Plan:        plan,
	}
}

func toResponseList(workouts []*domain.Workout) []Response {
	out := make([]Response, 0, len(workouts))
	for _, w := range workouts {
		out = append(out, toResponse(w))
	}
	return out
}
