package types

// Module name and store key
const (
	ModuleName = "roles"
	StoreKey   = ModuleName
)

// Capability roles recognised by the platform. ADMIN may grant and revoke
// roles; MANAGER creates pools and records payments; ASSET_CUSTODIAN
// registers and verifies assets.
const (
	RoleAdmin          = "ADMIN"
	RoleManager        = "MANAGER"
	RoleAssetCustodian = "ASSET_CUSTODIAN"
)

// ValidRole reports whether the given role string is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleAssetCustodian:
		return true
	}
	return false
}

// Grant records a capability assignment for an address.
type Grant struct {
	Address   string `json:"address"`
	Role      string `json:"role"`
	GrantedBy string `json:"granted_by"`
	GrantedAt int64  `json:"granted_at"`
}
