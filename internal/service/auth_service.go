package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"

	"banking-rag-be/pkg/events"
	pktNats "banking-rag-be/pkg/nats"
	"banking-rag-be/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, userId uuid.UUID, refreshToken string) error
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	authFeed       *store.ChannelAuthFeed
	persistor      store.Persistor
	accessTTL      time.Duration
	refreshTTL     time.Duration
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	authFeed *store.ChannelAuthFeed,
	persistor store.Persistor,
	accessTTL, refreshTTL time.Duration,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		authFeed:       authFeed,
		persistor:      persistor,
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
	}
}

// announceLogin pushes the fresh identity onto the auth-change feed and
// mirrors the session snapshot so a reconnecting client can restore it
// without re-authenticating.
func (s *authService) announceLogin(ctx context.Context, user *entity.User, token string) {
	authUser := store.AuthUser{
		ID:    user.Id.String(),
		Email: user.Email,
		Name:  user.FullName,
		Role:  string(user.Role),
	}
	if s.authFeed != nil {
		if err := s.authFeed.Publish(store.AuthChange{User: &authUser, Token: token}); err != nil {
			fmt.Printf("[WARN] Failed to publish auth change: %v\n", err)
		}
	}
	if s.persistor != nil {
		session := store.NewSessionStore()
		session.SetAuth(authUser, token)
		if err := store.SaveSnapshot(ctx, s.persistor, store.UserKey(store.KeyAuth, authUser.ID), session); err != nil {
			fmt.Printf("[WARN] Failed to persist session snapshot: %v\n", err)
		}
	}
}

func (s *authService) announceLogout(ctx context.Context, userId uuid.UUID) {
	if s.authFeed != nil {
		if err := s.authFeed.Publish(store.AuthChange{}); err != nil {
			fmt.Printf("[WARN] Failed to publish auth change: %v\n", err)
		}
	}
	if s.persistor != nil {
		if err := s.persistor.Delete(ctx, store.UserKey(store.KeyAuth, userId.String())); err != nil {
			fmt.Printf("[WARN] Failed to drop session snapshot: %v\n", err)
		}
	}
}

func hashRefreshToken(raw string) string {
	hasher := sha256.New()
	hasher.Write([]byte(raw))
	return hex.EncodeToString(hasher.Sum(nil))
}

func signAccessToken(user *entity.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return token.SignedString([]byte(secret))
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	// 1. Check for existing user
	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	role := entity.UserRole(req.Role)
	if !entity.ValidRole(role) {
		role = entity.UserRoleViewer
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	// 1. Check if user exists
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}

	// 2. Check if user has a password (might be OAuth only)
	if user.PasswordHash == nil {
		return nil, errors.New("user registered via OAuth")
	}

	// 3. Compare passwords
	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	// 4. Check if user is blocked
	if user.Status == entity.UserStatusBlocked {
		return nil, errors.New("user account is blocked")
	}

	// 5. Generate JWT
	signedToken, err := signAccessToken(user, s.accessTTL)
	if err != nil {
		return nil, err
	}

	var rawRefreshToken string

	// Only issue a refresh token when the client asked to stay signed in
	if req.RememberMe {
		rawRefreshToken = uuid.New().String()

		refreshTokenEntity := &entity.UserRefreshToken{
			Id:        uuid.New(),
			UserId:    user.Id,
			TokenHash: hashRefreshToken(rawRefreshToken),
			ExpiresAt: time.Now().Add(s.refreshTTL),
			Revoked:   false,
			CreatedAt: time.Now(),
			IpAddress: ipAddress,
			UserAgent: userAgent,
		}

		err = uow.UserRepository().CreateRefreshToken(ctx, refreshTokenEntity)
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %v", err)
		}
	}

	// PUBLISH EVENT
	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeUserLogin,
			Data: map[string]interface{}{
				"user_id": user.Id,
				"device":  userAgent,
				"time":    time.Now().Format(time.RFC822),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_LOGIN event: %v\n", err)
		}
	}

	s.announceLogin(ctx, user, signedToken)

	return &dto.LoginResponse{
		AccessToken:  signedToken,
		RefreshToken: rawRefreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User: dto.UserResponse{
			Id:        user.Id,
			Email:     user.Email,
			FullName:  user.FullName,
			Role:      string(user.Role),
			Status:    string(user.Status),
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	if refreshToken == "" {
		return nil, errors.New("missing refresh token")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tokenHash := hashRefreshToken(refreshToken)

	tokenEntity, err := uow.UserRepository().FindRefreshToken(ctx, specification.ByTokenHash{Hash: tokenHash})
	if err != nil || tokenEntity == nil {
		return nil, errors.New("invalid refresh token")
	}
	if tokenEntity.Revoked || time.Now().After(tokenEntity.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: tokenEntity.UserId})
	if err != nil || user == nil {
		return nil, errors.New("user not found")
	}
	if user.Status == entity.UserStatusBlocked {
		return nil, errors.New("user account is blocked")
	}

	signedToken, err := signAccessToken(user, s.accessTTL)
	if err != nil {
		return nil, err
	}

	// Rotate: revoke the old token, hand out a fresh one
	newRaw := uuid.New().String()
	newEntity := &entity.UserRefreshToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		TokenHash: hashRefreshToken(newRaw),
		ExpiresAt: time.Now().Add(s.refreshTTL),
		CreatedAt: time.Now(),
		IpAddress: tokenEntity.IpAddress,
		UserAgent: tokenEntity.UserAgent,
	}
	if err := uow.UserRepository().CreateRefreshToken(ctx, newEntity); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().RevokeRefreshToken(ctx, tokenHash); err != nil {
		return nil, err
	}

	s.announceLogin(ctx, user, signedToken)

	return &dto.RefreshResponse{
		AccessToken:  signedToken,
		RefreshToken: newRaw,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, userId uuid.UUID, refreshToken string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if refreshToken != "" {
		if err := uow.UserRepository().RevokeRefreshToken(ctx, hashRefreshToken(refreshToken)); err != nil {
			return err
		}
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeUserLogout,
			Data: map[string]interface{}{
				"user_id": userId,
				"time":    time.Now().Format(time.RFC822),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_LOGOUT event: %v\n", err)
		}
	}

	s.announceLogout(ctx, userId)

	return nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return &dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
	}, nil
}
