package user

import domain "fiturae/internal/domain/user"

// DetailsRequest: тело POST /api/users.
type DetailsRequest struct {
	Name     string `json:"name" binding:"required" example:"User1"`
	Email    string `json:"email" binding:"omitempty,email" example:"user1@example.com"`
	ImageURL string `json:"imageUrl" example:"https://avatars.githubusercontent.com/u/583231"`
}

// Response: представление пользователя в API.
type Response struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	ImageURL string `json:"imageUrl"`
}

// toResponse маппит доменную модель в DTO.
func toResponse(u *domain.User) Response {
	return Response{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		ImageURL: u.ImageURL,
	}
}
