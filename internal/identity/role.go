package identity

import "strings"

// Role is the canonical role set. Anything outside it means "no access" to
// callers, so RoleUnknown is the fail-closed default.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRRHH      Role = "rrhh"
	RoleCandidate Role = "candidato"
	RoleUnknown   Role = ""
)

// NormalizeRole lower-cases a role spelling and maps the synonyms that
// accumulated across the two stores onto the canonical set. Unrecognized
// spellings pass through lowered and match no canonical role.
func NormalizeRole(raw string) Role {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch s {
	case "admin", "administrador":
		return RoleAdmin
	case "rrhh", "reclutador", "recursos humanos":
		return RoleRRHH
	case "candidato", "candidate", "usuario":
		return RoleCandidate
	}

	return Role(s)
}
