package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"carspares/internal/domain/entity"
	domainerrors "carspares/internal/domain/errors"
	"carspares/internal/domain/repository"
	"carspares/internal/domain/service"
	mockRepo "carspares/internal/mocks/repository"
	mockService "carspares/internal/mocks/service"
	"carspares/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userTestDeps struct {
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	authRepo     *mockRepo.MockAuthRepository
	tokenRepo    *mockRepo.MockRefreshTokenRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func newTestUserService(t *testing.T) (usecase.UserUsecase, *userTestDeps) {
	deps := &userTestDeps{
		txManager:    mockRepo.NewMockTransactionManager(t),
		userRepo:     mockRepo.NewMockUserRepository(t),
		authRepo:     mockRepo.NewMockAuthRepository(t),
		tokenRepo:    mockRepo.NewMockRefreshTokenRepository(t),
		hasher:       mockService.NewMockPasswordHasher(t),
		tokenService: mockService.NewMockTokenService(t),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewUserService(UserServiceParams{
		TxManager:        deps.txManager,
		UserRepo:         deps.userRepo,
		AuthRepo:         deps.authRepo,
		RefreshTokenRepo: deps.tokenRepo,
		Hasher:           deps.hasher,
		TokenService:     deps.tokenService,
		Logger:           logger,
	})

	return svc, deps
}

func TestUserService_Register_Success(t *testing.T) {
	svc, deps := newTestUserService(t)

	ctx := context.Background()
	email := "buyer@example.com"

	deps.hasher.EXPECT().Hash("secret123").Return("hashed-secret", nil)

	deps.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockAuthRepo := mockRepo.NewMockAuthRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().AuthRepo().Return(mockAuthRepo)

			mockAuthRepo.EXPECT().
				FindAuthentication(ctx, entity.ProviderTypeEmail, email).
				Return(nil, repository.ErrAuthNotFound)
			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(_ context.Context, user *entity.User) {
					user.ID = uuid.New()
				}).
				Return(nil)
			mockAuthRepo.EXPECT().
				CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).
				Run(func(_ context.Context, auth *entity.Authentication) {
					assert.Equal(t, "hashed-secret", auth.PasswordHash)
					assert.Equal(t, email, auth.ProviderUserID)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	out, err := svc.Register(ctx, &usecase.RegisterInput{
		Name:     "Wanjiru",
		Email:    email,
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleBuyer, out.User.Role)
	assert.Equal(t, "Wanjiru", out.User.Name)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, deps := newTestUserService(t)

	ctx := context.Background()
	email := "taken@example.com"
	duplicateErr := domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")

	deps.hasher.EXPECT().Hash("secret123").Return("hashed-secret", nil)

	deps.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockAuthRepo := mockRepo.NewMockAuthRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().AuthRepo().Return(mockAuthRepo)

			mockAuthRepo.EXPECT().
				FindAuthentication(ctx, entity.ProviderTypeEmail, email).
				Return(&entity.Authentication{UserID: uuid.New()}, nil)

			_ = fn(mockFactory)
		}).
		Return(duplicateErr)

	out, err := svc.Register(ctx, &usecase.RegisterInput{
		Name:     "Otieno",
		Email:    email,
		Password: "secret123",
	})

	require.Error(t, err)
	assert.Nil(t, out)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrUserAlreadyExists.ErrorCode(), appErr.ErrorCode())
}

func TestUserService_Register_UnknownRole(t *testing.T) {
	svc, _ := newTestUserService(t)

	out, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Otieno",
		Email:    "otieno@example.com",
		Password: "secret123",
		Role:     "admin",
	})

	require.Error(t, err)
	assert.Nil(t, out)
}

func TestUserService_Login_Success(t *testing.T) {
	svc, deps := newTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	email := "seller@example.com"
	user := &entity.User{ID: userID, Name: "Aziz", Role: entity.RoleSeller}
	auth := &entity.Authentication{UserID: userID, PasswordHash: "hashed-secret"}

	deps.authRepo.EXPECT().FindAuthentication(ctx, entity.ProviderTypeEmail, email).Return(auth, nil)
	deps.hasher.EXPECT().Check("secret123", "hashed-secret").Return(true)
	deps.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	deps.tokenService.EXPECT().GenerateTokens(userID, "seller").Return("access-token", "refresh-token", nil)
	deps.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-hash")
	deps.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)
	deps.tokenRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(_ context.Context, token *entity.RefreshToken) {
			assert.Equal(t, userID, token.UserID)
			assert.Equal(t, "refresh-hash", token.TokenHash)
			assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), token.ExpiresAt, time.Minute)
		}).
		Return(nil)

	out, err := svc.Login(ctx, &usecase.LoginInput{Email: email, Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Equal(t, userID, out.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc, deps := newTestUserService(t)

	ctx := context.Background()
	email := "seller@example.com"
	auth := &entity.Authentication{UserID: uuid.New(), PasswordHash: "hashed-secret"}

	deps.authRepo.EXPECT().FindAuthentication(ctx, entity.ProviderTypeEmail, email).Return(auth, nil)
	deps.hasher.EXPECT().Check("wrong", "hashed-secret").Return(false)

	out, err := svc.Login(ctx, &usecase.LoginInput{Email: email, Password: "wrong"})

	require.Error(t, err)
	assert.Nil(t, out)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidCredentials.ErrorCode(), appErr.ErrorCode())
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc, deps := newTestUserService(t)

	ctx := context.Background()

	deps.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "nobody@example.com").
		Return(nil, repository.ErrAuthNotFound)

	out, err := svc.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "secret123"})

	require.Error(t, err)
	assert.Nil(t, out)
}

func TestUserService_Refresh_RotatesSession(t *testing.T) {
	svc, deps := newTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Role: entity.RoleBuyer}
	stored := &entity.RefreshToken{UserID: userID, TokenHash: "old-hash"}

	deps.tokenService.EXPECT().
		ValidateToken("old-refresh").
		Return(&service.Claims{UserID: userID, Type: "refresh"}, nil)
	deps.tokenService.EXPECT().HashToken("old-refresh").Return("old-hash")
	deps.tokenRepo.EXPECT().FindRefreshTokenByHash(ctx, "old-hash").Return(stored, nil)
	deps.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	deps.tokenService.EXPECT().GenerateTokens(userID, "buyer").Return("new-access", "new-refresh", nil)
	deps.tokenService.EXPECT().HashToken("new-refresh").Return("new-hash")
	deps.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)

	deps.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockTokenRepo := mockRepo.NewMockRefreshTokenRepository(t)

			mockFactory.EXPECT().RefreshTokenRepo().Return(mockTokenRepo)

			mockTokenRepo.EXPECT().DeleteRefreshTokenByHash(ctx, "old-hash").Return(nil)
			mockTokenRepo.EXPECT().
				CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
				Run(func(_ context.Context, token *entity.RefreshToken) {
					assert.Equal(t, "new-hash", token.TokenHash)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	out, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "old-refresh"})

	require.NoError(t, err)
	assert.Equal(t, "new-access", out.AccessToken)
	assert.Equal(t, "new-refresh", out.RefreshToken)
}

func TestUserService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, deps := newTestUserService(t)

	deps.tokenService.EXPECT().
		ValidateToken("an-access-token").
		Return(&service.Claims{UserID: uuid.New(), Type: "access"}, nil)

	out, err := svc.Refresh(context.Background(), &usecase.RefreshInput{RefreshToken: "an-access-token"})

	require.Error(t, err)
	assert.Nil(t, out)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrRefreshTokenInvalid.ErrorCode(), appErr.ErrorCode())
}

func TestUserService_Refresh_UnknownSession(t *testing.T) {
	svc, deps := newTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	deps.tokenService.EXPECT().
		ValidateToken("stale-refresh").
		Return(&service.Claims{UserID: userID, Type: "refresh"}, nil)
	deps.tokenService.EXPECT().HashToken("stale-refresh").Return("stale-hash")
	deps.tokenRepo.EXPECT().
		FindRefreshTokenByHash(ctx, "stale-hash").
		Return(nil, repository.ErrRefreshTokenNotFound)

	out, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "stale-refresh"})

	require.Error(t, err)
	assert.Nil(t, out)
}

func TestUserService_Logout_DeletesSession(t *testing.T) {
	svc, deps := newTestUserService(t)

	ctx := context.Background()

	deps.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-hash")
	deps.tokenRepo.EXPECT().DeleteRefreshTokenByHash(ctx, "refresh-hash").Return(nil)

	require.NoError(t, svc.Logout(ctx, &usecase.LogoutInput{RefreshToken: "refresh-token"}))
}
