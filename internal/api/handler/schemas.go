package handler

// --- Request types ---
//
// Every inbound payload is bound into one of these typed records and run
// through the validator before it reaches a service; nothing downstream
// trusts request shape implicitly.

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	RoleID   string `json:"role_id"  validate:"required"`
}

type assignTaskRequest struct {
	Name string `json:"name" validate:"required"`
}

// --- Response types ---

type messageResponse struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
	User          any  `json:"user,omitempty"`
}
