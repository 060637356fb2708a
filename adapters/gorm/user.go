package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/lborres/tasklist/core"
	"gorm.io/gorm"
)

func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	rec := userRecord{Name: user.Name, Email: user.Email, PasswordHash: user.PasswordHash}
	if err := a.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return core.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = rec.ID
	user.CreatedAt = rec.CreatedAt
	user.UpdatedAt = rec.UpdatedAt
	return nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id int64) (*core.User, error) {
	return a.findUser(ctx, "id = ?", id)
}

func (a *Adapter) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return a.findUser(ctx, "email = ?", email)
}

func (a *Adapter) findUser(ctx context.Context, query string, arg any) (*core.User, error) {
	var rec userRecord
	if err := a.db.WithContext(ctx).Where(query, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return rec.toCore(), nil
}
