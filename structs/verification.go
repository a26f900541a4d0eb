package structs

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type VerificationStatusResponse struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}
