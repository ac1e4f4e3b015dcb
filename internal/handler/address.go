package handler

import (
	"net/http"

	"github.com/forgo/directory/api/internal/dao"
	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// AddressHandler handles address endpoints
type AddressHandler struct {
	store *dao.Store
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(store *dao.Store) *AddressHandler {
	return &AddressHandler{store: store}
}

// Create handles POST /v1/addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var addr model.Address
	if err := DecodeJSON(r, &addr); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	addr.Meta = model.Meta{}

	if h.requirePartyExists(w, r, addr.PartyID) {
		return
	}
	if err := h.store.Addresses.Insert(r.Context(), &addr); err != nil {
		WriteError(w, MapStoreError(err, "address"))
		return
	}
	WriteData(w, http.StatusCreated, &addr, map[string]string{
		"self": "/v1/addresses/" + addr.ID,
	})
}

// List handles GET /v1/addresses, optionally filtered by party
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	var addrs []*model.Address
	var err error

	if partyID := r.URL.Query().Get("party_id"); partyID != "" {
		addrs, err = h.store.Addresses.ListByParty(r.Context(), recordID("party", partyID))
	} else {
		addrs, err = h.store.Addresses.List(r.Context(), database.NewQuery().OrderBy("created_on"))
	}
	if err != nil {
		WriteError(w, MapStoreError(err, "address"))
		return
	}
	WriteCollection(w, http.StatusOK, addrs, len(addrs), map[string]string{
		"self": "/v1/addresses",
	})
}

// Get handles GET /v1/addresses/{id}
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := recordID("address", r.PathValue("id"))

	addr, err := h.store.Addresses.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "address"))
		return
	}
	if addr == nil {
		WriteError(w, model.NewNotFoundError("address"))
		return
	}
	WriteData(w, http.StatusOK, addr, map[string]string{
		"self": "/v1/addresses/" + addr.ID,
	})
}

// Update handles PUT /v1/addresses/{id}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := recordID("address", r.PathValue("id"))

	addr, err := h.store.Addresses.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "address"))
		return
	}
	if addr == nil {
		WriteError(w, model.NewNotFoundError("address"))
		return
	}

	meta := addr.Meta
	if err := DecodeJSON(r, addr); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	addr.Meta = meta

	if err := h.store.Addresses.Update(r.Context(), addr); err != nil {
		WriteError(w, MapStoreError(err, "address"))
		return
	}
	WriteData(w, http.StatusOK, addr, map[string]string{
		"self": "/v1/addresses/" + addr.ID,
	})
}

// Delete handles DELETE /v1/addresses/{id}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := recordID("address", r.PathValue("id"))

	if err := h.store.Addresses.Delete(r.Context(), id); err != nil {
		WriteError(w, MapStoreError(err, "address"))
		return
	}
	WriteNoContent(w)
}

// requirePartyExists writes a 404 and returns true when the referenced party
// does not exist
func (h *AddressHandler) requirePartyExists(w http.ResponseWriter, r *http.Request, partyID string) bool {
	if partyID == "" {
		return false
	}
	party, err := h.store.Parties.Get(r.Context(), partyID)
	if err != nil {
		WriteError(w, MapStoreError(err, "party"))
		return true
	}
	if party == nil {
		WriteError(w, model.NewNotFoundError("party"))
		return true
	}
	return false
}
