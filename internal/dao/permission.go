package dao

import (
	"context"
	"errors"

	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// Permissions provides data access for permissions
type Permissions struct {
	*DAO[*model.Permission]
}

// NewPermissions creates a permission DAO. Permission codes are unique.
func NewPermissions(db database.Database) *Permissions {
	unique := func(p *model.Permission) *database.Query {
		q := database.NewQuery().Where("code", p.Code)
		return &q
	}
	return &Permissions{
		DAO: New(db, "permission", func() *model.Permission { return &model.Permission{} }, unique),
	}
}

// GetByCode retrieves a permission by its code
func (d *Permissions) GetByCode(ctx context.Context, code string) (*model.Permission, error) {
	doc, err := d.db.FindOne(ctx, d.table, database.NewQuery().Where("code", code))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	perm := &model.Permission{}
	if err := fromDoc(doc, perm); err != nil {
		return nil, err
	}
	return perm, nil
}

// GetMany resolves a set of permission ids to permissions, skipping ids that
// no longer exist
func (d *Permissions) GetMany(ctx context.Context, ids []string) ([]*model.Permission, error) {
	out := make([]*model.Permission, 0, len(ids))
	for _, id := range dedupeIDs(ids) {
		perm, err := d.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if perm != nil {
			out = append(out, perm)
		}
	}
	return out, nil
}
