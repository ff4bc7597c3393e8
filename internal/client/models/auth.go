package models

// UserProfile is the member record returned by GET /members/profile.
// Email is immutable after signup.
type UserProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer credential. "token" is the only accepted
// field name.
type LoginResponse struct {
	Token string `json:"token"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"required,phone"`
}

// ProfileUpdate is the body of PUT /members/profile. Email is never sent;
// an empty Password keeps the current one.
type ProfileUpdate struct {
	Password string `json:"password,omitempty" validate:"omitempty,password"`
	Name     string `json:"name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"required,phone"`
}

// ErrorResponse is the error body the API returns alongside 4xx/5xx codes.
type ErrorResponse struct {
	Message string `json:"message"`
}
