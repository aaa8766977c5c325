package repository

import (
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
)

type UserEntity struct {
	ID           int64      `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string     `db:"username"      gorm:"column:username;not null;uniqueIndex"`
	Email        string     `db:"email"         gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string     `db:"password_hash" gorm:"column:password_hash;not null"`
	Role         string     `db:"role"          gorm:"column:role;default:admin"`
	CreatedAt    time.Time  `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
	LastLogin    *time.Time `db:"last_login"    gorm:"column:last_login"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
		LastLogin:    m.LastLogin,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		Role:         e.Role,
		CreatedAt:    e.CreatedAt,
		LastLogin:    e.LastLogin,
	}
}
