package domain

// User is the session user provided by the surrounding page context.
// Sub is the backend's subject identifier (used as instructor_id / buyer id).
type User struct {
	Sub   string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  int    `json:"roleId,omitempty"`
}

// Role values assigned at registration.
const (
	RoleStudent   = 1
	RoleProfessor = 2
)
