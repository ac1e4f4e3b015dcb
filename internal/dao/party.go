package dao

import (
	"context"

	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// Parties provides data access for parties. Parties carry no uniqueness
// rule; two people may share a name.
type Parties struct {
	*DAO[*model.Party]
}

// NewParties creates a party DAO
func NewParties(db database.Database) *Parties {
	return &Parties{
		DAO: New(db, "party", func() *model.Party { return &model.Party{} }, nil),
	}
}

// ListByKind returns all parties of one kind, ordered by name
func (d *Parties) ListByKind(ctx context.Context, kind model.PartyKind) ([]*model.Party, error) {
	return d.List(ctx, database.NewQuery().Where("kind", string(kind)).OrderBy("name"))
}
