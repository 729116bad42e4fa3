package user_dto

type UpdateProfileRequest struct {
	Avatar       *string `json:"avatar,omitempty" validate:"omitempty,url"`
	ProfileSetup *bool   `json:"profile_setup,omitempty"`
}

type SearchUsersRequest struct {
	Query string `json:"query" validate:"required,min=2,max=50"`
}
