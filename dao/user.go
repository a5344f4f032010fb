package dao

import (
	"NoteShare/models"
	"context"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// FindByUsername 用户名查询
func (u *Users) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "username = ?", username)
}

// IsTaken 用户名或邮箱是否已被占用
func (u *Users) IsTaken(ctx context.Context, username, email string) (bool, error) {
	return u.Repo.IsExist(ctx, "username = ? OR email = ?", username, email)
}
