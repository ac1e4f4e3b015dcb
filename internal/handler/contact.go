package handler

import (
	"net/http"

	"github.com/forgo/directory/api/internal/dao"
	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// ContactHandler handles contact method endpoints
type ContactHandler struct {
	store *dao.Store
}

// NewContactHandler creates a new contact method handler
func NewContactHandler(store *dao.Store) *ContactHandler {
	return &ContactHandler{store: store}
}

// Create handles POST /v1/contact-methods
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cm model.ContactMethod
	if err := DecodeJSON(r, &cm); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	cm.Meta = model.Meta{}

	if cm.PartyID != "" {
		party, err := h.store.Parties.Get(r.Context(), cm.PartyID)
		if err != nil {
			WriteError(w, MapStoreError(err, "party"))
			return
		}
		if party == nil {
			WriteError(w, model.NewNotFoundError("party"))
			return
		}
	}
	if err := h.store.Contacts.Insert(r.Context(), &cm); err != nil {
		WriteError(w, MapStoreError(err, "contact method"))
		return
	}
	WriteData(w, http.StatusCreated, &cm, map[string]string{
		"self": "/v1/contact-methods/" + cm.ID,
	})
}

// List handles GET /v1/contact-methods, optionally filtered by party
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	var methods []*model.ContactMethod
	var err error

	if partyID := r.URL.Query().Get("party_id"); partyID != "" {
		methods, err = h.store.Contacts.ListByParty(r.Context(), recordID("party", partyID))
	} else {
		methods, err = h.store.Contacts.List(r.Context(), database.NewQuery().OrderBy("created_on"))
	}
	if err != nil {
		WriteError(w, MapStoreError(err, "contact method"))
		return
	}
	WriteCollection(w, http.StatusOK, methods, len(methods), map[string]string{
		"self": "/v1/contact-methods",
	})
}

// Get handles GET /v1/contact-methods/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := recordID("contact_method", r.PathValue("id"))

	cm, err := h.store.Contacts.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "contact method"))
		return
	}
	if cm == nil {
		WriteError(w, model.NewNotFoundError("contact method"))
		return
	}
	WriteData(w, http.StatusOK, cm, map[string]string{
		"self": "/v1/contact-methods/" + cm.ID,
	})
}

// Update handles PUT /v1/contact-methods/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := recordID("contact_method", r.PathValue("id"))

	cm, err := h.store.Contacts.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapStoreError(err, "contact method"))
		return
	}
	if cm == nil {
		WriteError(w, model.NewNotFoundError("contact method"))
		return
	}

	meta := cm.Meta
	if err := DecodeJSON(r, cm); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	cm.Meta = meta

	if err := h.store.Contacts.Update(r.Context(), cm); err != nil {
		WriteError(w, MapStoreError(err, "contact method"))
		return
	}
	WriteData(w, http.StatusOK, cm, map[string]string{
		"self": "/v1/contact-methods/" + cm.ID,
	})
}

// Delete handles DELETE /v1/contact-methods/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := recordID("contact_method", r.PathValue("id"))

	if err := h.store.Contacts.Delete(r.Context(), id); err != nil {
		WriteError(w, MapStoreError(err, "contact method"))
		return
	}
	WriteNoContent(w)
}
