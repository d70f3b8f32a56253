package models

type Role string

const (
	RoleManager     Role = "manager"
	RoleContributor Role = "contributor"
)

var roleLookup = map[string]Role{
	"MANAGER":         RoleManager,
	"PROJECT_MANAGER": RoleManager,
	"CONTRIBUTOR":     RoleContributor,
	"MEMBER":          RoleContributor,
}

// ParseRole maps an external role name to a Role. Anything unrecognized is
// treated as a contributor, never as a manager.
func ParseRole(name string) Role {
	if role, ok := roleLookup[normalizeDescription(name)]; ok {
		return role
	}
	return RoleContributor
}

type Collaborator struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Role      Role   `json:"role" bson:"role"`
}

// FullName is used for sorting and report rows.
func (c Collaborator) FullName() string {
	return c.FirstName + " " + c.LastName
}
