package identity

import "github.com/google/uuid"

// Role is the authorization tier assigned to a caller by the external
// identity provider. The core only checks roles against fixed allow-lists.
type Role string

const (
	RoleDireccion      Role = "DIRECCION"       // highest tier, may override contract blocks
	RoleAdministracion Role = "ADMINISTRACION"  // finance administration
	RoleOficinaTecnica Role = "OFICINA_TECNICA" // technical office, creates expenses
	RoleOperador       Role = "OPERADOR"        // site operator, read-mostly
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleDireccion, RoleAdministracion, RoleOficinaTecnica, RoleOperador:
		return true
	}
	return false
}

// Actor identifies the caller of a core operation. It is supplied fully
// resolved by the identity provider; no token handling happens here.
type Actor struct {
	ID             uuid.UUID
	Role           Role
	OrganizationID uuid.UUID
}

// CanValidateExpenses reports whether the actor may transition expense states.
func (a Actor) CanValidateExpenses() bool {
	return a.Role == RoleDireccion || a.Role == RoleAdministracion
}

// CanOverrideContractBlock reports whether the actor may bypass auto-block.
func (a Actor) CanOverrideContractBlock() bool {
	return a.Role == RoleDireccion
}

// CanManageCertifications reports whether the actor may create or remove
// contractor certifications.
func (a Actor) CanManageCertifications() bool {
	return a.Role == RoleDireccion || a.Role == RoleAdministracion
}

// CanRunPayroll reports whether the actor may run the weekly payroll batch.
func (a Actor) CanRunPayroll() bool {
	return a.Role == RoleDireccion || a.Role == RoleAdministracion
}
