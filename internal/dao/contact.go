package dao

import (
	"context"

	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// Contacts provides data access for contact methods. A party may not carry
// the same value twice for the same kind, so the uniqueness filter is a
// three-field compound probe.
type Contacts struct {
	*DAO[*model.ContactMethod]
}

// NewContacts creates a contact method DAO
func NewContacts(db database.Database) *Contacts {
	unique := func(c *model.ContactMethod) *database.Query {
		q := database.NewQuery().
			Where("party_id", c.PartyID).
			Where("kind", string(c.Kind)).
			Where("value", c.Value)
		return &q
	}
	return &Contacts{
		DAO: New(db, "contact_method", func() *model.ContactMethod { return &model.ContactMethod{} }, unique),
	}
}

// ListByParty returns all contact methods attached to a party
func (d *Contacts) ListByParty(ctx context.Context, partyID string) ([]*model.ContactMethod, error) {
	return d.List(ctx, database.NewQuery().Where("party_id", partyID).OrderBy("created_on"))
}

// DeleteByParty removes all contact methods attached to a party
func (d *Contacts) DeleteByParty(ctx context.Context, partyID string) error {
	methods, err := d.ListByParty(ctx, partyID)
	if err != nil {
		return err
	}
	for _, cm := range methods {
		if err := d.Delete(ctx, cm.ID); err != nil {
			return err
		}
	}
	return nil
}
