package dto

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type PreferencesResponse struct {
	Theme       string `json:"theme"`
	Language    string `json:"language"`
	SidebarOpen bool   `json:"sidebar_open"`
}

type UpdatePreferencesRequest struct {
	Theme       *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark system"`
	Language    *string `json:"language,omitempty" validate:"omitempty,oneof=es en"`
	SidebarOpen *bool   `json:"sidebar_open,omitempty"`
}
