package handler

import (
	"net/http"

	"github.com/forgo/directory/api/internal/dao"
	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// RoleHandler handles role endpoints, including the role/permission
// association endpoints
type RoleHandler struct {
	store *dao.Store
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(store *dao.Store) *RoleHandler {
	return &RoleHandler{store: store}
}

// Create handles POST /v1/roles
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var role model.Role
	if err := DecodeJSON(r, &role); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	role.Meta = model.Meta{}

	for _, permissionID := range role.PermissionIDs {
		perm, err := h.store.Permissions.Get(r.Context(), permissionID)
		if err != nil {
			WriteError(w, MapStoreError(err, "permission"))
			return
		}
		if perm == nil {
			WriteError(w, model.NewNotFoundError("permission"))
			return
		}
	}
	if err := h.store.Roles.Insert(r.Context(), &role); err != nil {
		WriteError(w, MapStoreError(err, "role"))
		return
	}

	WriteData(w, http.StatusCreated, &role, map[string]string{
		"self": "/v1/roles/" + role.ID,
	})
}

// List handles GET /v1/roles
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.store.Roles.List(r.Context(), database.NewQuery().OrderBy("code"))
	if err != nil {
		WriteError(w, MapStoreError(err, "role"))
		return
	}
	WriteCollection(w, http.StatusOK, roles, len(roles), map[string]string{
		"self": "/v1/roles",
	})
}

// Get handles GET /v1/roles/{id}
func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := recordID("role", r.PathValue("id"))

	role, err := h.store.Roles.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "role"))
		return
	}
	if role == nil {
		WriteError(w, model.NewNotFoundError("role"))
		return
	}
	WriteData(w, http.StatusOK, role, map[string]string{
		"self": "/v1/roles/" + role.ID,
	})
}

// updateRoleRequest carries the fields clients may change directly.
// Permission membership has its own endpoints.
type updateRoleRequest struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Update handles PUT /v1/roles/{id}
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := recordID("role", r.PathValue("id"))

	role, err := h.store.Roles.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "role"))
		return
	}
	if role == nil {
		WriteError(w, model.NewNotFoundError("role"))
		return
	}

	var req updateRoleRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.Code != nil {
		role.Code = *req.Code
	}
	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}

	if err := h.store.Roles.Update(r.Context(), role); err != nil {
		WriteError(w, MapStoreError(err, "role"))
		return
	}
	WriteData(w, http.StatusOK, role, map[string]string{
		"self": "/v1/roles/" + role.ID,
	})
}

// Delete handles DELETE /v1/roles/{id}. The role's id is detached from every
// account that carries it.
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := recordID("role", r.PathValue("id"))

	if err := h.store.DeleteRole(r.Context(), id); err != nil {
		WriteError(w, MapStoreError(err, "role"))
		return
	}
	WriteNoContent(w)
}

// ListPermissions handles GET /v1/roles/{id}/permissions
func (h *RoleHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	id := recordID("role", r.PathValue("id"))

	perms, err := h.store.Roles.Permissions(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "role"))
		return
	}
	WriteCollection(w, http.StatusOK, perms, len(perms), map[string]string{
		"self": "/v1/roles/" + id + "/permissions",
	})
}

// GrantPermissions handles POST /v1/roles/{id}/permissions
func (h *RoleHandler) GrantPermissions(w http.ResponseWriter, r *http.Request) {
	id := recordID("role", r.PathValue("id"))

	var req model.MembershipRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	role, err := h.store.Roles.GrantPermissions(r.Context(), id, req.IDs...)
	if err != nil {
		WriteError(w, MapStoreError(err, "permission"))
		return
	}
	WriteData(w, http.StatusOK, role, map[string]string{
		"self": "/v1/roles/" + role.ID + "/permissions",
	})
}

// ReplacePermissions handles PUT /v1/roles/{id}/permissions. An empty id set
// clears the role's grants.
func (h *RoleHandler) ReplacePermissions(w http.ResponseWriter, r *http.Request) {
	id := recordID("role", r.PathValue("id"))

	var req model.MembershipRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	role, err := h.store.Roles.ReplacePermissions(r.Context(), id, req.IDs)
	if err != nil {
		WriteError(w, MapStoreError(err, "permission"))
		return
	}
	WriteData(w, http.StatusOK, role, map[string]string{
		"self": "/v1/roles/" + role.ID + "/permissions",
	})
}

// RevokePermission handles DELETE /v1/roles/{id}/permissions/{permissionId}
func (h *RoleHandler) RevokePermission(w http.ResponseWriter, r *http.Request) {
	id := recordID("role", r.PathValue("id"))
	permissionID := recordID("permission", r.PathValue("permissionId"))

	if _, err := h.store.Roles.RevokePermissions(r.Context(), id, permissionID); err != nil {
		WriteError(w, MapStoreError(err, "role"))
		return
	}
	WriteNoContent(w)
}
