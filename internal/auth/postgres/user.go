package postgres

import (
	"errors"

	"github.com/hrcore/employee-management/internal"
	"github.com/hrcore/employee-management/internal/auth"
	"gorm.io/gorm"
)

type userRow struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"not null;uniqueIndex"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"not null"`
	IsActive     bool   `gorm:"column:is_active;not null;default:true"`
	PasswordHash string `gorm:"column:password_hash;not null"`
}

func (userRow) TableName() string {
	return "users"
}

// UserRepository implements the auth.UserRepository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) auth.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(email string) (*auth.User, error) {
	var row userRow
	err := r.db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}
	return r.toUser(&row), nil
}

func (r *UserRepository) GetByID(id int64) (*auth.User, error) {
	var row userRow
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, err
	}
	return r.toUser(&row), nil
}

func (r *UserRepository) Create(user *auth.User) error {
	row := userRow{
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		IsActive:     user.IsActive,
		PasswordHash: user.PasswordHash,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return err
	}
	user.ID = row.ID
	return nil
}

func (r *UserRepository) toUser(row *userRow) *auth.User {
	user := &auth.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		Role:         row.Role,
		IsActive:     row.IsActive,
		PasswordHash: row.PasswordHash,
	}

	// The linked employee record, if any, rides along for convenience.
	var employeeID int64
	err := r.db.Table("employees").
		Select("id").
		Where("user_id = ?", row.ID).
		Take(&employeeID).Error
	if err == nil {
		user.EmployeeID = &employeeID
	}

	return user
}
