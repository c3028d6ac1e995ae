package dto

// AdminLoginRequest carries the admin credential body
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginResponse is returned on a successful admin login
type AdminLoginResponse struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// CheckAuthResponse is returned by the admin auth probe
type CheckAuthResponse struct {
	IsAdmin bool `json:"isAdmin"`
}
