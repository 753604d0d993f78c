package auth

// MeResponse: пользователь, собранный из атрибутов OAuth-сессии.
type MeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// LogoutResponse: ответ на выход.
type LogoutResponse struct {
	Status string `json:"status"`
}
