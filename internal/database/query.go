package database

// Op is a comparison operator in a query condition
type Op string

const (
	OpEq       Op = "="
	OpNotEq    Op = "!="
	OpContains Op = "CONTAINS" // array field contains value
)

// Condition constrains a single document field
type Condition struct {
	Field string
	Op    Op
	Value interface{}
}

// Query is an engine-neutral document filter. Engines translate it into
// their native query form; the memory engine evaluates it directly.
//
// The zero value matches every document in a table.
type Query struct {
	Conditions []Condition
	// ExcludedID skips the document with this id. Used by uniqueness probes
	// on update, which must not match the record being updated.
	ExcludedID string
	OrderField string
	OrderDesc  bool
	Limit      int
}

// NewQuery returns an empty query matching all documents
func NewQuery() Query {
	return Query{}
}

// Where adds an equality condition
func (q Query) Where(field string, value interface{}) Query {
	q.Conditions = append(q.Conditions[:len(q.Conditions):len(q.Conditions)],
		Condition{Field: field, Op: OpEq, Value: value})
	return q
}

// WhereNot adds an inequality condition
func (q Query) WhereNot(field string, value interface{}) Query {
	q.Conditions = append(q.Conditions[:len(q.Conditions):len(q.Conditions)],
		Condition{Field: field, Op: OpNotEq, Value: value})
	return q
}

// WhereContains adds a condition matching documents whose array field
// contains the given value
func (q Query) WhereContains(field string, value interface{}) Query {
	q.Conditions = append(q.Conditions[:len(q.Conditions):len(q.Conditions)],
		Condition{Field: field, Op: OpContains, Value: value})
	return q
}

// ExcludeID skips the document with the given id
func (q Query) ExcludeID(id string) Query {
	q.ExcludedID = id
	return q
}

// OrderBy sorts results ascending by field
func (q Query) OrderBy(field string) Query {
	q.OrderField = field
	q.OrderDesc = false
	return q
}

// OrderByDesc sorts results descending by field
func (q Query) OrderByDesc(field string) Query {
	q.OrderField = field
	q.OrderDesc = true
	return q
}

// WithLimit caps the number of results
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}
