package handler

import (
	"net/http"

	"github.com/forgo/directory/api/internal/dao"
	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// PartyHandler handles party endpoints and the party-scoped sub-collections
type PartyHandler struct {
	store *dao.Store
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(store *dao.Store) *PartyHandler {
	return &PartyHandler{store: store}
}

// Create handles POST /v1/parties
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var party model.Party
	if err := DecodeJSON(r, &party); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	party.Meta = model.Meta{}

	if err := h.store.Parties.Insert(r.Context(), &party); err != nil {
		WriteError(w, MapStoreError(err, "party"))
		return
	}
	WriteData(w, http.StatusCreated, &party, map[string]string{
		"self": "/v1/parties/" + party.ID,
	})
}

// List handles GET /v1/parties, optionally filtered by kind
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	var parties []*model.Party
	var err error

	if kind := r.URL.Query().Get("kind"); kind != "" {
		parties, err = h.store.Parties.ListByKind(r.Context(), model.PartyKind(kind))
	} else {
		parties, err = h.store.Parties.List(r.Context(), database.NewQuery().OrderBy("name"))
	}
	if err != nil {
		WriteError(w, MapStoreError(err, "party"))
		return
	}
	WriteCollection(w, http.StatusOK, parties, len(parties), map[string]string{
		"self": "/v1/parties",
	})
}

// Get handles GET /v1/parties/{id}
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := recordID("party", r.PathValue("id"))

	party, err := h.store.Parties.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "party"))
		return
	}
	if party == nil {
		WriteError(w, model.NewNotFoundError("party"))
		return
	}
	WriteData(w, http.StatusOK, party, map[string]string{
		"self": "/v1/parties/" + party.ID,
	})
}

// Update handles PUT /v1/parties/{id}
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := recordID("party", r.PathValue("id"))

	party, err := h.store.Parties.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "party"))
		return
	}
	if party == nil {
		WriteError(w, model.NewNotFoundError("party"))
		return
	}

	meta := party.Meta
	if err := DecodeJSON(r, party); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	party.Meta = meta

	if err := h.store.Parties.Update(r.Context(), party); err != nil {
		WriteError(w, MapStoreError(err, "party"))
		return
	}
	WriteData(w, http.StatusOK, party, map[string]string{
		"self": "/v1/parties/" + party.ID,
	})
}

// Delete handles DELETE /v1/parties/{id}. The party's addresses and contact
// methods are removed with it.
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := recordID("party", r.PathValue("id"))

	if err := h.store.DeleteParty(r.Context(), id); err != nil {
		WriteError(w, MapStoreError(err, "party"))
		return
	}
	WriteNoContent(w)
}

// ListAddresses handles GET /v1/parties/{id}/addresses
func (h *PartyHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	id := recordID("party", r.PathValue("id"))

	addrs, err := h.store.Addresses.ListByParty(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "address"))
		return
	}
	WriteCollection(w, http.StatusOK, addrs, len(addrs), map[string]string{
		"self": "/v1/parties/" + id + "/addresses",
	})
}

// ListContactMethods handles GET /v1/parties/{id}/contact-methods
func (h *PartyHandler) ListContactMethods(w http.ResponseWriter, r *http.Request) {
	id := recordID("party", r.PathValue("id"))

	methods, err := h.store.Contacts.ListByParty(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "contact method"))
		return
	}
	WriteCollection(w, http.StatusOK, methods, len(methods), map[string]string{
		"self": "/v1/parties/" + id + "/contact-methods",
	})
}

// ListAccounts handles GET /v1/parties/{id}/accounts
func (h *PartyHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	id := recordID("party", r.PathValue("id"))

	accounts, err := h.store.Accounts.ListByParty(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "account"))
		return
	}
	public := make([]*model.AccountPublic, 0, len(accounts))
	for _, acct := range accounts {
		public = append(public, acct.ToPublic())
	}
	WriteCollection(w, http.StatusOK, public, len(public), map[string]string{
		"self": "/v1/parties/" + id + "/accounts",
	})
}
