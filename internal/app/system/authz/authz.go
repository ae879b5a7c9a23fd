// Package authz answers role questions about the signed-in user.
//
// The app has exactly two tiers: "admin" manages the roster of rooms,
// materials and settings; "medewerker" works the day-to-day volunteer
// and planning screens. Everything admin can do, medewerker cannot be
// assumed to do, so handlers ask this package rather than comparing
// role strings inline.
package authz

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mefen/volunteerhub/internal/app/system/auth"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

// UserCtx returns the signed-in user's role, display name and ObjectID.
// ok is false when nobody is signed in or the stored ID is malformed.
func UserCtx(r *http.Request) (role, name string, id primitive.ObjectID, ok bool) {
	u, found := auth.CurrentUser(r)
	if !found {
		return "", "", primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return "", "", primitive.NilObjectID, false
	}
	return strings.ToLower(u.Role), u.Name, oid, true
}

// IsAdmin reports whether the signed-in user has the admin role.
func IsAdmin(r *http.Request) bool {
	u, found := auth.CurrentUser(r)
	return found && strings.EqualFold(u.Role, models.RoleAdmin)
}

// HasAnyRole reports whether the signed-in user's role matches any of
// the given roles.
func HasAnyRole(r *http.Request, roles ...string) bool {
	u, found := auth.CurrentUser(r)
	if !found {
		return false
	}
	for _, role := range roles {
		if strings.EqualFold(u.Role, role) {
			return true
		}
	}
	return false
}
