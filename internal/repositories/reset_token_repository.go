package repositories

import (
	"time"

	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"gorm.io/gorm"
)

// ResetTokenRepository defines the interface for password-reset tokens
type ResetTokenRepository interface {
	CreateToken(token *models.PasswordResetToken) error
	GetByJTI(jti string) (*models.PasswordResetToken, error)
	MarkUsed(jti string) error
}

// PostgresResetTokenRepository implements ResetTokenRepository for PostgreSQL
type PostgresResetTokenRepository struct {
	db *gorm.DB
}

// NewPostgresResetTokenRepository creates a new PostgresResetTokenRepository
func NewPostgresResetTokenRepository(db *gorm.DB) *PostgresResetTokenRepository {
	return &PostgresResetTokenRepository{db: db}
}

// CreateToken persists a freshly issued reset token
func (r *PostgresResetTokenRepository) CreateToken(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

// GetByJTI retrieves a reset token by its unique ID
func (r *PostgresResetTokenRepository) GetByJTI(jti string) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	if err := r.db.Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// MarkUsed stamps the token as redeemed
func (r *PostgresResetTokenRepository) MarkUsed(jti string) error {
	now := time.Now()
	return r.db.Model(&models.PasswordResetToken{}).
		Where("jti = ?", jti).
		Update("used_at", &now).Error
}
