package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"active-rooms-backend/internal/model"
)

// Authenticate resolves a credential pair to a user. Unknown credentials
// return ErrNotFound.
func (s *gormStore) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		Take(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// EnsureUser creates the user unless an account with the username already
// exists. Used to seed the bootstrap admin at startup.
func (s *gormStore) EnsureUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(user).Error; err != nil {
		return fmt.Errorf("failed to ensure user %s: %w", user.Username, err)
	}
	return nil
}
