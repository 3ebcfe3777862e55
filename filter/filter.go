// Package filter compiles declarative filter trees, as produced by a UI or a
// caller payload, into the "where" query object of the Data Tables records API.
//
//	tree := &filter.Tree{
//	    Operator: filter.OperatorOr,
//	    Conditions: []filter.Condition{
//	        {Column: "status", Operator: "eq", Value: "open"},
//	        {Column: "age", Operator: "gt", Value: 5},
//	    },
//	}
//	where := filter.Compile(tree)
//	// {"$or": [{"status": {"$eq": "open"}}, {"age": {"$gt": 5}}]}
//
// A tree compiles to nil when it has no usable conditions. nil means "no
// filter" and must be left out of the request body; it never means "match
// nothing".
package filter

const (
	OperatorAnd = "and"
	OperatorOr  = "or"

	keyAnd = "$and"
	keyOr  = "$or"
)

var operators = map[string]string{
	"eq":          "$eq",
	"ne":          "$ne",
	"gt":          "$gt",
	"lt":          "$lt",
	"gte":         "$gte",
	"lte":         "$lte",
	"in":          "$in",
	"starts_with": "$starts_with",
}

type Tree struct {
	// Operator joins the conditions: "or", or "and" for anything else.
	Operator   string      `json:"operator,omitempty"`
	Conditions []Condition `json:"conditions,omitempty"`
}

type Condition struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`

	// CaseSensitive is only honoured for "eq" and "starts_with".
	CaseSensitive *bool `json:"case_sensitive,omitempty"`
}

// Compiled is the provider-shaped query object.
type Compiled map[string]any

// Compile drops conditions with a missing column or an unknown operator.
// One usable condition compiles to a bare {column: {op: value}} map, several
// are wrapped in $and or $or.
func Compile(tree *Tree) Compiled {
	if tree == nil {
		return nil
	}

	var conditions []any
	for _, c := range tree.Conditions {
		if compiled, ok := compileCondition(c); ok {
			conditions = append(conditions, compiled)
		}
	}

	switch len(conditions) {
	case 0:
		return nil
	case 1:
		return conditions[0].(Compiled)
	}

	if tree.Operator == OperatorOr {
		return Compiled{keyOr: conditions}
	}
	return Compiled{keyAnd: conditions}
}

func compileCondition(c Condition) (Compiled, bool) {
	if c.Column == "" || c.Operator == "" {
		return nil, false
	}
	op, ok := operators[c.Operator]
	if !ok {
		return nil, false
	}

	value := c.Value
	if c.CaseSensitive != nil && (c.Operator == "eq" || c.Operator == "starts_with") {
		value = map[string]any{
			"value":          c.Value,
			"case_sensitive": *c.CaseSensitive,
		}
	}

	return Compiled{c.Column: map[string]any{op: value}}, true
}
