package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/repository/specification"
	"banking-rag-be/internal/repository/unitofwork"
	"banking-rag-be/pkg/store"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetPreferences(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	persistor  store.Persistor
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, persistor store.Persistor) IUserService {
	return &userService{
		uowFactory: uowFactory,
		persistor:  persistor,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
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

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	user.FullName = req.FullName
	if req.Email != "" && req.Email != user.Email {
		existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
		if existing != nil {
			return nil, errors.New("email already in use")
		}
		user.Email = req.Email
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
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

func (s *userService) GetPreferences(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	pref, err := uow.PreferenceRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		// Defaults mirror the preference store zero state.
		return &dto.PreferencesResponse{
			Theme:       string(store.ThemeSystem),
			Language:    string(store.LanguageSpanish),
			SidebarOpen: true,
		}, nil
	}
	return &dto.PreferencesResponse{
		Theme:       pref.Theme,
		Language:    pref.Language,
		SidebarOpen: pref.SidebarOpen,
	}, nil
}

func (s *userService) UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	pref, err := uow.PreferenceRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		pref = &entity.UserPreference{
			Id:          uuid.New(),
			UserId:      userId,
			Theme:       string(store.ThemeSystem),
			Language:    string(store.LanguageSpanish),
			SidebarOpen: true,
			CreatedAt:   time.Now(),
		}
	}

	if req.Theme != nil {
		pref.Theme = *req.Theme
	}
	if req.Language != nil {
		pref.Language = *req.Language
	}
	if req.SidebarOpen != nil {
		pref.SidebarOpen = *req.SidebarOpen
	}
	pref.UpdatedAt = time.Now()

	if err := uow.PreferenceRepository().Upsert(ctx, pref); err != nil {
		return nil, err
	}

	// Keep the durable per-user snapshots in sync with the row, using the
	// same keys the preference store persists under.
	prefStore := store.NewPreferenceStore()
	prefStore.SetTheme(store.Theme(pref.Theme))
	prefStore.SetLanguage(store.Language(pref.Language))
	prefStore.SetSidebarOpen(pref.SidebarOpen)
	_ = store.SaveSnapshot(ctx, s.persistor, store.UserKey(store.KeyTheme, userId.String()), prefStore)
	if data, err := json.Marshal(pref.Language); err == nil {
		_ = s.persistor.Save(ctx, store.UserKey(store.KeyLanguage, userId.String()), data)
	}

	return &dto.PreferencesResponse{
		Theme:       pref.Theme,
		Language:    pref.Language,
		SidebarOpen: pref.SidebarOpen,
	}, nil
}
