package session

import (
	"maps"

	"github.com/goliatone/go-router"
)

var TemplateUserKey = "current_user"

// TemplateData returns the view bindings derived from a session state so
// templates can branch on authentication and role without reaching into the
// store.
//
// In templates:
//
//	{% if is_authenticated %}
//	{% if is_tutor %}
//	{{ current_user.Name }}
func TemplateData(s State) router.ViewContext {
	user := s.CurrentUser()

	return router.ViewContext{
		TemplateUserKey:    user,
		"is_authenticated": s.IsAuthenticated(),
		"is_loading":       s.IsLoading(),
		"is_student":       user != nil && user.Role == RoleStudent,
		"is_tutor":         user != nil && user.Role == RoleTutor,
		"is_admin":         user != nil && user.Role == RoleAdmin,

		// role constants for template comparisons
		"roles": map[string]string{
			"student": RoleStudent,
			"tutor":   RoleTutor,
			"admin":   RoleAdmin,
		},
	}
}

// MergeTemplateData overlays request data on the session bindings. Request
// keys win on collision.
func MergeTemplateData(s State, data router.ViewContext) router.ViewContext {
	out := TemplateData(s)
	maps.Copy(out, data)
	return out
}
