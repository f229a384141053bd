package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "carspares/internal/delivery/context"
	"carspares/internal/domain/entity"
	domainerrors "carspares/internal/domain/errors"
	"carspares/internal/domain/repository"
	"carspares/internal/domain/service"
	"carspares/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	authRepo         repository.AuthRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	AuthRepo         repository.AuthRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		authRepo:         params.AuthRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with email credentials. The user row and
// the credential row commit in one transaction.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	role := entity.Role(input.Role)
	if input.Role == "" {
		role = entity.RoleBuyer
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown account role")
	}

	srv.log(ctx).Info("Starting registration",
		slog.Any("role", role),
		slog.String("email", input.Email),
	)

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		_, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
		}

		user := &entity.User{
			Name:  input.Name,
			Email: input.Email,
			Role:  role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		auth := &entity.Authentication{
			UserID:         user.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, auth); err != nil {
			return errors.Wrap(err, "failed to create authentication")
		}

		registeredUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction",
			slog.String("email", input.Email),
			slog.Any("error", err),
		)

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// Login verifies email credentials and issues a token pair. The refresh
// token's hash is stored as the session record.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	auth, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("no account for this email")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	if !srv.hasher.Check(input.Password, auth.PasswordHash) {
		srv.log(ctx).Warn("Login rejected: password mismatch", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	user, err := srv.userRepo.FindByID(ctx, auth.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for login")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	session := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.CreateRefreshToken(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh rotates a valid refresh token into a new token pair. The old
// session is deleted and replaced inside one transaction.
func (srv *userService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokenService.ValidateToken(input.RefreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token rejected")
	}

	oldHash := srv.tokenService.HashToken(input.RefreshToken)

	stored, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, oldHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
			return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("session not found or expired")
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	user, err := srv.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for refresh")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	newHash := srv.tokenService.HashToken(refreshToken)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.RefreshTokenRepo()

		if err := tokenRepo.DeleteRefreshTokenByHash(ctx, oldHash); err != nil {
			return errors.Wrap(err, "failed to delete old refresh token")
		}

		return tokenRepo.CreateRefreshToken(ctx, &entity.RefreshToken{
			UserID:    user.ID,
			TokenHash: newHash,
			ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	srv.log(ctx).Debug("Refresh token rotated", slog.Any("userID", user.ID))

	return &usecase.RefreshOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout deletes the session matching the presented refresh token. An
// unknown token still logs out cleanly.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	hash := srv.tokenService.HashToken(input.RefreshToken)

	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, hash); err != nil {
		return errors.Wrap(err, "failed to delete refresh token")
	}

	srv.log(ctx).Debug("Logout completed")

	return nil
}
