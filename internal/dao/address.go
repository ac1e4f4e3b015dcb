package dao

import (
	"context"

	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// Addresses provides data access for postal addresses. Addresses carry no
// uniqueness rule, exercising the base DAO's nil-filter path.
type Addresses struct {
	*DAO[*model.Address]
}

// NewAddresses creates an address DAO
func NewAddresses(db database.Database) *Addresses {
	return &Addresses{
		DAO: New(db, "address", func() *model.Address { return &model.Address{} }, nil),
	}
}

// ListByParty returns all addresses attached to a party
func (d *Addresses) ListByParty(ctx context.Context, partyID string) ([]*model.Address, error) {
	return d.List(ctx, database.NewQuery().Where("party_id", partyID).OrderBy("created_on"))
}

// DeleteByParty removes all addresses attached to a party
func (d *Addresses) DeleteByParty(ctx context.Context, partyID string) error {
	addrs, err := d.ListByParty(ctx, partyID)
	if err != nil {
		return err
	}
	for _, addr := range addrs {
		if err := d.Delete(ctx, addr.ID); err != nil {
			return err
		}
	}
	return nil
}
