package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "tubetweet-server/internal/domain/user"
	"tubetweet-server/internal/infrastructure/database/entities"
	"tubetweet-server/internal/utils/platformerrors"
)

// Repository handles user persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, u *domain.User, passwordHash string) error {
	entity := entities.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: passwordHash,
		AvatarURL:    u.AvatarURL,
		CoverURL:     u.CoverURL,
	}
	err := r.db.WithContext(ctx).Create(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"username or email already registered",
				err,
				"23d2b8a3-d1e1-4677-91e8-f0f067005c90",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create user",
			err,
			"891da55b-cbc0-437a-bd9f-3034839a2574",
		)
	}
	u.CreatedAt = entity.CreatedAt
	u.UpdatedAt = entity.UpdatedAt
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		return nil, r.notFoundOr(ctx, err, "user not found", "failed to get user by id",
			"b42ba897-b01d-43a0-b03c-2d6aeab9c990", "b3dcdc2f-8c90-4106-92ff-aadab570aeb5")
	}
	u := mapEntity(entity)
	return &u, nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&entity).Error
	if err != nil {
		return nil, r.notFoundOr(ctx, err, "user not found", "failed to get user by username",
			"5e4f1f1d-d29e-497c-a059-94fc82314d16", "3d5dce55-2321-455b-94a6-5710f7ff1bb3")
	}
	u := mapEntity(entity)
	return &u, nil
}

// FindByLogin resolves a username or email and returns the stored password hash.
func (r *Repository) FindByLogin(ctx context.Context, login string) (*domain.User, string, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).Where("username = ? OR email = ?", login, login).First(&entity).Error
	if err != nil {
		return nil, "", r.notFoundOr(ctx, err, "user not found", "failed to get user by login",
			"4845e8ee-6a2c-444f-976b-8fb4cd550124", "7d60caff-101d-449b-9c29-8a40f7ebfbd5")
	}
	u := mapEntity(entity)
	return &u, entity.PasswordHash, nil
}

func (r *Repository) UsernameOrEmailTaken(ctx context.Context, username, email, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&entities.User{})
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return false, nil
	}
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to check username/email uniqueness",
			err,
			"e7b77334-d071-4dd5-8f84-2e23a9589e7a",
		)
	}
	return count > 0, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, u *domain.User) error {
	updates := map[string]any{
		"email":     u.Email,
		"full_name": u.FullName,
	}
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", u.ID).Updates(updates).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"email already registered",
				err,
				"b867ad0f-ae1e-493f-975c-0addfdd15625",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update user profile",
			err,
			"bb642b3c-9536-48a0-8221-6a834eeb01cb",
		)
	}
	return nil
}

func (r *Repository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).
		Update("password_hash", hash).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update password",
			err,
			"03391c57-84c3-41e8-b2df-6d2a11a157b5",
		)
	}
	return nil
}

func (r *Repository) SetRefreshToken(ctx context.Context, id, token string) error {
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).
		Update("refresh_token", token).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to store refresh token",
			err,
			"7e8e0992-c730-4079-b76f-3fc4f77fe716",
		)
	}
	return nil
}

func (r *Repository) RefreshTokenFor(ctx context.Context, id string) (string, error) {
	var entity entities.User
	err := r.db.WithContext(ctx).Select("refresh_token").Where("id = ?", id).First(&entity).Error
	if err != nil {
		return "", r.notFoundOr(ctx, err, "user not found", "failed to read refresh token",
			"3fa34093-2383-4c26-b862-0eb0239f628f", "43277604-9412-4653-93bc-30a381b046fc")
	}
	return entity.RefreshToken, nil
}

func (r *Repository) UpdateImages(ctx context.Context, id, avatarURL, avatarKey, coverURL, coverKey string) error {
	updates := map[string]any{}
	if avatarURL != "" {
		updates["avatar_url"] = avatarURL
		updates["avatar_key"] = avatarKey
	}
	if coverURL != "" {
		updates["cover_url"] = coverURL
		updates["cover_key"] = coverKey
	}
	if len(updates) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update user images",
			err,
			"a6f9587d-bb5d-4936-9175-9ffef8b06c19",
		)
	}
	return nil
}

// Exists reports whether a user id resolves. Satisfies the subscription
// domain's channel checker.
func (r *Repository) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", userID).Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to check user existence",
			err,
			"e85dcdc4-3445-4761-9d18-552bad763f64",
		)
	}
	return count > 0, nil
}

func (r *Repository) notFoundOr(ctx context.Context, err error, notFoundMsg, dbMsg, notFoundUUID, dbUUID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			notFoundMsg, err, notFoundUUID)
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
		dbMsg, err, dbUUID)
}

func mapEntity(entity entities.User) domain.User {
	return domain.User{
		ID:        entity.ID,
		Username:  entity.Username,
		Email:     entity.Email,
		FullName:  entity.FullName,
		AvatarURL: entity.AvatarURL,
		CoverURL:  entity.CoverURL,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}
