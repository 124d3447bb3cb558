package service

import (
	"github.com/edusparsh/erp_backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessScope is the visibility restriction derived from a principal. The
// three states are distinct: unrestricted (admins), no access (non-admin
// with no centres), and a concrete centre/responsibility restriction.
type AccessScope struct {
	Unrestricted bool
	NoAccess     bool

	CentreIn             []primitive.ObjectID
	ResponsibilityEquals string
}

// ResolveAccessScope computes the lead-visibility scope for a principal.
//
// superAdmin/admin see everything. Telecallers see leads assigned under
// their own name within their centres. Every other role sees its centres
// only. A non-admin with no assigned centres gets the NoAccess sentinel:
// the caller must return an empty result set, not an error.
func ResolveAccessScope(p models.Principal) AccessScope {
	if models.IsAdminRole(p.Role) {
		return AccessScope{Unrestricted: true}
	}

	if len(p.Centres) == 0 {
		return AccessScope{NoAccess: true}
	}

	scope := AccessScope{CentreIn: p.Centres}
	if p.Role == models.UserRoleTELECALLER {
		scope.ResponsibilityEquals = p.Name
	}
	return scope
}

// Filter renders the scope as a bson fragment. NoAccess renders as a
// predicate no document matches, so downstream counts come back zero
// instead of erroring.
func (s AccessScope) Filter() bson.M {
	if s.Unrestricted {
		return bson.M{}
	}
	if s.NoAccess {
		return bson.M{"_id": bson.M{"$exists": false}}
	}

	filter := bson.M{"centreId": bson.M{"$in": s.CentreIn}}
	if s.ResponsibilityEquals != "" {
		filter["leadResponsibility"] = CaseInsensitiveExact(s.ResponsibilityEquals)
	}
	return filter
}

// AllowsCentre reports whether the scope permits the given centre.
func (s AccessScope) AllowsCentre(centreID primitive.ObjectID) bool {
	if s.Unrestricted {
		return true
	}
	if s.NoAccess {
		return false
	}
	for _, id := range s.CentreIn {
		if id == centreID {
			return true
		}
	}
	return false
}
