package types

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type UserResp struct {
	Message string    `json:"message"`
	User    *UserInfo `json:"user"`
}

type LoginResp struct {
	Message string    `json:"message"`
	User    *UserInfo `json:"user"`
	Token   string    `json:"token"`
}

type CheckAuthResp struct {
	Authenticated bool      `json:"authenticated"`
	User          *UserInfo `json:"user,omitempty"`
}
