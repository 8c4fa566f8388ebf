package user

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"tubetweet-server/internal/utils/idgen"
	"tubetweet-server/internal/utils/platformerrors"
)

// Service orchestrates account lifecycle and session management.
type Service struct {
	repo   Repository
	tokens TokenIssuer
	subs   SubscriptionReader
	log    zerolog.Logger
}

func NewService(repo Repository, tokens TokenIssuer, subs SubscriptionReader, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		subs:   subs,
		log:    log.With().Str("component", "user-service").Logger(),
	}
}

// Register creates a new account. Duplicate usernames or emails fail with a
// conflict error.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	username := strings.TrimSpace(strings.ToLower(params.Username))
	email := strings.TrimSpace(strings.ToLower(params.Email))

	if username == "" || email == "" || params.Password == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"username, email and password are required", nil, "625a5498-2816-4e35-b352-0e2d59c4adce")
	}
	if !strings.Contains(email, "@") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"email is not valid", nil, "fc13f07f-03de-477e-8279-39cb5b1ee5ff")
	}

	taken, err := s.repo.UsernameOrEmailTaken(ctx, username, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
			"username or email already registered", nil, "c2616f54-ca94-48af-b546-9a1ab1cdd9c8")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to hash password", err, "0e549aff-5c8f-4fb6-916d-f5ccbc16f966")
	}

	u := &User{
		ID:       idgen.New(idgen.PrefixUser),
		Username: username,
		Email:    email,
		FullName: strings.TrimSpace(params.FullName),
	}
	if err := s.repo.Create(ctx, u, string(hash)); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials, mints a token pair and stores the refresh token.
func (s *Service) Login(ctx context.Context, login, password string) (*User, TokenPair, error) {
	login = strings.TrimSpace(strings.ToLower(login))
	if login == "" || password == "" {
		return nil, TokenPair{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"username and password are required", nil, "42370662-16d2-485e-a3d8-f5eed9955293")
	}

	u, hash, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, TokenPair{}, s.invalidCredentials(ctx, err)
		}
		return nil, TokenPair{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, TokenPair{}, s.invalidCredentials(ctx, nil)
	}

	pair, err := s.issueSession(ctx, u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the token pair. The presented refresh token must match the
// stored one; anything else is treated as an invalid session.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*User, TokenPair, error) {
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, TokenPair{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"invalid refresh token", err, "6999be85-2039-443d-b13d-2c6f33402930")
	}

	stored, err := s.repo.RefreshTokenFor(ctx, userID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if stored == "" || stored != refreshToken {
		return nil, TokenPair{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"refresh token is expired or has been revoked", nil, "afed4389-5f58-4c84-9ee9-096249437bf2")
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, TokenPair{}, err
	}

	pair, err := s.issueSession(ctx, userID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Logout clears the stored refresh token, invalidating outstanding sessions.
func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.repo.SetRefreshToken(ctx, userID, "")
}

// GetByID resolves an account by id.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// ChangePassword verifies the old password before storing the new hash.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"new password is required", nil, "af22ff83-69cc-4b90-91f3-0efbe773c235")
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	_, hash, err := s.repo.FindByLogin(ctx, u.Username)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)) != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"old password is incorrect", nil, "779dbbf6-b51f-42b1-ad2f-a08b165985df")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to hash password", err, "b2caa02b-a1b9-4373-9f82-426bcd13f592")
	}
	return s.repo.UpdatePasswordHash(ctx, userID, string(newHash))
}

// UpdateAccount mutates the account's full name and email.
func (s *Service) UpdateAccount(ctx context.Context, userID string, params UpdateParams) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email := strings.TrimSpace(strings.ToLower(params.Email)); email != "" && email != u.Email {
		taken, err := s.repo.UsernameOrEmailTaken(ctx, "", email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
				"email already registered", nil, "1f75259e-eae4-4e3c-8b49-19be115b9727")
		}
		u.Email = email
	}
	if name := strings.TrimSpace(params.FullName); name != "" {
		u.FullName = name
	}

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateImages stores new avatar/cover URLs after the handler uploaded them.
func (s *Service) UpdateImages(ctx context.Context, userID, avatarURL, avatarKey, coverURL, coverKey string) (*User, error) {
	if err := s.repo.UpdateImages(ctx, userID, avatarURL, avatarKey, coverURL, coverKey); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, userID)
}

// ChannelProfile returns the public channel view for a username. viewerID may
// be empty for anonymous requests.
func (s *Service) ChannelProfile(ctx context.Context, username, viewerID string) (*ChannelProfile, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(strings.ToLower(username)))
	if err != nil {
		return nil, err
	}

	count, err := s.subs.CountForChannel(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	profile := &ChannelProfile{User: *u, SubscriberCount: count}
	if viewerID != "" {
		subscribed, err := s.subs.Exists(ctx, viewerID, u.ID)
		if err != nil {
			return nil, err
		}
		profile.IsSubscribed = subscribed
	}
	return profile, nil
}

func (s *Service) issueSession(ctx context.Context, userID string) (TokenPair, error) {
	access, refresh, err := s.tokens.MintPair(userID)
	if err != nil {
		return TokenPair{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to mint session tokens", err, "6c5a3036-19c8-4a0d-a316-ced5dcd715c8")
	}
	if err := s.repo.SetRefreshToken(ctx, userID, refresh); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) invalidCredentials(ctx context.Context, err error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
		"invalid username or password", err, "bda0ab61-004c-4a99-8891-17e161e11726")
}
