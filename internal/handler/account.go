package handler

import (
	"net/http"

	"github.com/forgo/directory/api/internal/dao"
	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// AccountHandler handles account endpoints
type AccountHandler struct {
	store *dao.Store
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(store *dao.Store) *AccountHandler {
	return &AccountHandler{store: store}
}

// Create handles POST /v1/accounts
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAccountRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	hash, err := dao.HashPassword(req.Password)
	if err != nil {
		WriteError(w, model.NewInternalError(""))
		return
	}

	acct := &model.Account{
		Email:    req.Email,
		Username: req.Username,
		Hash:     hash,
		PartyID:  req.PartyID,
	}
	if err := h.store.Accounts.Insert(r.Context(), acct); err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}

	WriteData(w, http.StatusCreated, acct.ToPublic(), map[string]string{
		"self": "/v1/accounts/" + acct.ID,
	})
}

// List handles GET /v1/accounts, optionally filtered by party
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	var accounts []*model.Account
	var err error

	if partyID := r.URL.Query().Get("party_id"); partyID != "" {
		accounts, err = h.store.Accounts.ListByParty(r.Context(), recordID("party", partyID))
	} else {
		accounts, err = h.store.Accounts.List(r.Context(), database.NewQuery().OrderBy("email"))
	}
	if err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}

	public := make([]*model.AccountPublic, 0, len(accounts))
	for _, acct := range accounts {
		public = append(public, acct.ToPublic())
	}
	WriteCollection(w, http.StatusOK, public, len(public), map[string]string{
		"self": "/v1/accounts",
	})
}

// Get handles GET /v1/accounts/{id}
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := recordID("account", r.PathValue("id"))

	acct, err := h.store.Accounts.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}
	if acct == nil {
		WriteError(w, model.NewNotFoundError("account"))
		return
	}

	WriteData(w, http.StatusOK, acct.ToPublic(), map[string]string{
		"self": "/v1/accounts/" + acct.ID,
	})
}

// updateAccountRequest carries the fields clients may change directly.
// Role membership and credentials have their own endpoints.
type updateAccountRequest struct {
	Email    *string              `json:"email,omitempty"`
	Username *string              `json:"username,omitempty"`
	Status   *model.AccountStatus `json:"status,omitempty"`
	PartyID  *string              `json:"party_id,omitempty"`
}

// Update handles PUT /v1/accounts/{id}
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := recordID("account", r.PathValue("id"))

	acct, err := h.store.Accounts.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}
	if acct == nil {
		WriteError(w, model.NewNotFoundError("account"))
		return
	}

	var req updateAccountRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.Email != nil {
		acct.Email = *req.Email
	}
	if req.Username != nil {
		acct.Username = req.Username
	}
	if req.Status != nil {
		acct.Status = *req.Status
	}
	if req.PartyID != nil {
		acct.PartyID = req.PartyID
	}

	if err := h.store.Accounts.Update(r.Context(), acct); err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}

	WriteData(w, http.StatusOK, acct.ToPublic(), map[string]string{
		"self": "/v1/accounts/" + acct.ID,
	})
}

// Delete handles DELETE /v1/accounts/{id}
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := recordID("account", r.PathValue("id"))

	if err := h.store.Accounts.Delete(r.Context(), id); err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}
	WriteNoContent(w)
}

// ChangePassword handles PUT /v1/accounts/{id}/password
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id := recordID("account", r.PathValue("id"))

	var req model.ChangePasswordRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	if _, err := h.store.Accounts.SetPassword(r.Context(), id, req.Password); err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}
	WriteNoContent(w)
}

// ListRoles handles GET /v1/accounts/{id}/roles
func (h *AccountHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	id := recordID("account", r.PathValue("id"))

	acct, err := h.store.Accounts.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}
	if acct == nil {
		WriteError(w, model.NewNotFoundError("account"))
		return
	}

	roles := make([]*model.Role, 0, len(acct.RoleIDs))
	for _, roleID := range acct.RoleIDs {
		role, err := h.store.Roles.Get(r.Context(), roleID)
		if err != nil {
			WriteError(w, MapStoreError(err, "role"))
			return
		}
		if role != nil {
			roles = append(roles, role)
		}
	}
	WriteCollection(w, http.StatusOK, roles, len(roles), map[string]string{
		"self": "/v1/accounts/" + acct.ID + "/roles",
	})
}

// AssignRoles handles POST /v1/accounts/{id}/roles
func (h *AccountHandler) AssignRoles(w http.ResponseWriter, r *http.Request) {
	id := recordID("account", r.PathValue("id"))

	var req model.MembershipRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	acct, err := h.store.Accounts.AssignRoles(r.Context(), id, req.IDs...)
	if err != nil {
		WriteError(w, MapStoreError(err, "role"))
		return
	}
	WriteData(w, http.StatusOK, acct.ToPublic(), map[string]string{
		"self": "/v1/accounts/" + acct.ID + "/roles",
	})
}

// ReplaceRoles handles PUT /v1/accounts/{id}/roles. An empty id set clears
// the account's roles.
func (h *AccountHandler) ReplaceRoles(w http.ResponseWriter, r *http.Request) {
	id := recordID("account", r.PathValue("id"))

	var req model.MembershipRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	acct, err := h.store.Accounts.ReplaceRoles(r.Context(), id, req.IDs)
	if err != nil {
		WriteError(w, MapStoreError(err, "role"))
		return
	}
	WriteData(w, http.StatusOK, acct.ToPublic(), map[string]string{
		"self": "/v1/accounts/" + acct.ID + "/roles",
	})
}

// WithdrawRole handles DELETE /v1/accounts/{id}/roles/{roleId}
func (h *AccountHandler) WithdrawRole(w http.ResponseWriter, r *http.Request) {
	id := recordID("account", r.PathValue("id"))
	roleID := recordID("role", r.PathValue("roleId"))

	if _, err := h.store.Accounts.WithdrawRoles(r.Context(), id, roleID); err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}
	WriteNoContent(w)
}

// ListPermissions handles GET /v1/accounts/{id}/permissions, resolving the
// union of permissions granted through the account's roles
func (h *AccountHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	id := recordID("account", r.PathValue("id"))

	perms, err := h.store.Accounts.EffectivePermissions(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}
	WriteCollection(w, http.StatusOK, perms, len(perms), map[string]string{
		"self": "/v1/accounts/" + id + "/permissions",
	})
}
