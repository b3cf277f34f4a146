package progress

// Role is the enumerated account role carried by a session.
type Role string

const (
	RoleLearner Role = "LEARNER"
	RoleTeacher Role = "TEACHER"
)

// ParseRole maps a stored role string to a Role; anything unknown is a learner.
func ParseRole(s string) Role {
	if Role(s) == RoleTeacher {
		return RoleTeacher
	}
	return RoleLearner
}

// Permission names an action a role may perform.
type Permission int

const (
	PermTakeCourse Permission = iota // chapters, tests, placement
	PermAnswer                       // grading and score submission
	PermViewProfile
	PermManageQuestions
	PermViewStudents
)

var rolePermissions = map[Role][]Permission{
	RoleLearner: {PermTakeCourse, PermAnswer, PermViewProfile},
	RoleTeacher: {PermAnswer, PermViewProfile, PermManageQuestions, PermViewStudents},
}

// Identity is the authenticated caller of a request. It is built once from the
// session token and passed explicitly to every engine call.
type Identity struct {
	UserID   uint
	Username string
	Role     Role
}

// Can reports whether the identity's role grants p.
func (id Identity) Can(p Permission) bool {
	for _, granted := range rolePermissions[id.Role] {
		if granted == p {
			return true
		}
	}
	return false
}

func (id Identity) authorize(p Permission) error {
	if id.UserID == 0 {
		return &AuthorizationError{Reason: "You need to log in or create an account to access our learning materials!"}
	}
	if !id.Can(p) {
		return &AuthorizationError{Reason: "Your account is not allowed to access this resource."}
	}
	return nil
}
