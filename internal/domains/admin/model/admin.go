package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	contentmodel "github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/infrastructure/database"
)

// Admin is a back-office account. Usernames are unique ignoring case.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 128)),
	)
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Diagnostics is the admin overview of catalog and pool health.
type Diagnostics struct {
	Content     contentmodel.Stats  `json:"content"`
	People      int                 `json:"people"`
	GenresTotal int                 `json:"genres_total"`
	Database    *database.PoolStats `json:"database,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
}
