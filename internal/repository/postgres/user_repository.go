package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "fiturae/internal/domain/user"
	repo "fiturae/internal/repository/interfaces"
)

const usersEmailIndex = "idx_users_email_unique"

// pgUser представляет собой ORM-модель для таблицы users.
type pgUser struct {
	ID        string    `gorm:"column:id;type:text;primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null"`
	Email     string    `gorm:"column:email;type:text;not null"`
	ImageURL  string    `gorm:"column:image_url;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null"`
}

func (pgUser) TableName() string {
	return "users"
}

// UserRepository реализует repo.UserRepository с использованием GORM и Postgres.
type UserRepository struct {
	db *gorm.DB
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникального ограничения PostgreSQL.
// Ориентируется на код ошибки 23505 (unique_violation) и, при наличии, имя индекса/constraint.
func isUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.EqualFold(pgErr.ConstraintName, constraintName)
	}

	// С TranslateError GORM заменяет ошибку драйвера на ErrDuplicatedKey.
	// В таблице users единственное уникальное ограничение кроме PK это email,
	// а конфликт по PK разрешается через ON CONFLICT.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "23505") && strings.Contains(strings.ToLower(errStr), constraintName)
}

func (m *pgUser) toDomain() *domain.User {
	return &domain.User{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		ImageURL: m.ImageURL,
	}
}

func fromDomainUser(u *domain.User) *pgUser {
	return &pgUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		ImageURL:  u.ImageURL,
		CreatedAt: time.Now().UTC(),
	}
}

// Save сохраняет пользователя. Существующая запись с тем же id перезаписывается,
// при этом created_at остаётся прежним.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	saved := *user
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	model := fromDomainUser(&saved)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "image_url"}),
		}).
		Create(model).Error
	if err != nil {
		if isUniqueViolation(err, usersEmailIndex) {
			return nil, repo.ErrEmailExists
		}
		return nil, err
	}

	return &saved, nil
}

// oneByCondition возвращает одну запись по условию.
func (r *UserRepository) oneByCondition(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var model pgUser
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Take(&model).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// FindByID возвращает пользователя по идентификатору.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.oneByCondition(ctx, "id = ?", id)
}

// FindByEmail возвращает пользователя по email.
// Пустой email никому не принадлежит.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, repo.ErrNotFound
	}
	return r.oneByCondition(ctx, "email = ?", email)
}
