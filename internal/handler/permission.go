package handler

import (
	"net/http"

	"github.com/forgo/directory/api/internal/dao"
	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// PermissionHandler handles permission endpoints
type PermissionHandler struct {
	store *dao.Store
}

// NewPermissionHandler creates a new permission handler
func NewPermissionHandler(store *dao.Store) *PermissionHandler {
	return &PermissionHandler{store: store}
}

// Create handles POST /v1/permissions
func (h *PermissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var perm model.Permission
	if err := DecodeJSON(r, &perm); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	perm.Meta = model.Meta{}

	if err := h.store.Permissions.Insert(r.Context(), &perm); err != nil {
		WriteError(w, MapStoreError(err, "permission"))
		return
	}
	WriteData(w, http.StatusCreated, &perm, map[string]string{
		"self": "/v1/permissions/" + perm.ID,
	})
}

// List handles GET /v1/permissions
func (h *PermissionHandler) List(w http.ResponseWriter, r *http.Request) {
	perms, err := h.store.Permissions.List(r.Context(), database.NewQuery().OrderBy("code"))
	if err != nil {
		WriteError(w, MapStoreError(err, "permission"))
		return
	}
	WriteCollection(w, http.StatusOK, perms, len(perms), map[string]string{
		"self": "/v1/permissions",
	})
}

// Get handles GET /v1/permissions/{id}
func (h *PermissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := recordID("permission", r.PathValue("id"))

	perm, err := h.store.Permissions.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "permission"))
		return
	}
	if perm == nil {
		WriteError(w, model.NewNotFoundError("permission"))
		return
	}
	WriteData(w, http.StatusOK, perm, map[string]string{
		"self": "/v1/permissions/" + perm.ID,
	})
}

// Update handles PUT /v1/permissions/{id}
func (h *PermissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := recordID("permission", r.PathValue("id"))

	perm, err := h.store.Permissions.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "permission"))
		return
	}
	if perm == nil {
		WriteError(w, model.NewNotFoundError("permission"))
		return
	}

	meta := perm.Meta
	if err := DecodeJSON(r, perm); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	perm.Meta = meta

	if err := h.store.Permissions.Update(r.Context(), perm); err != nil {
		WriteError(w, MapStoreError(err, "permission"))
		return
	}
	WriteData(w, http.StatusOK, perm, map[string]string{
		"self": "/v1/permissions/" + perm.ID,
	})
}

// Delete handles DELETE /v1/permissions/{id}. The permission's id is
// detached from every role that carries it.
func (h *PermissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := recordID("permission", r.PathValue("id"))

	if err := h.store.DeletePermission(r.Context(), id); err != nil {
		WriteError(w, MapStoreError(err, "permission"))
		return
	}
	WriteNoContent(w)
}
