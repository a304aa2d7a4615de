package prop

// The bootstrap meta-type graph. RootType is its own type; every other
// meta-type has RootType as its type; the three expression kinds have
// ExpressionType as theirs. Identity against these singletons is how all
// type predicates work, which also gives deep walks a place to stop on the
// self-referential cycle.
var (
	RootType       = &Property{ID: "type"}
	ExpressionType = &Property{ID: "expression", Type: RootType}
	OperatorType   = &Property{ID: "operator", Type: RootType}
	ConstraintType = &Property{ID: "constraint", Type: RootType}
	UserType       = &Property{ID: "property", Type: RootType}

	LiteralType   = &Property{ID: "literal", Type: ExpressionType}
	ReferenceType = &Property{ID: "reference", Type: ExpressionType}
	CallType      = &Property{ID: "call", Type: ExpressionType}
)

func init() {
	RootType.Type = RootType
}

// bootstrapByID maps wire-form type ids back to the singletons on decode.
var bootstrapByID = map[string]*Property{
	RootType.ID:       RootType,
	ExpressionType.ID: ExpressionType,
	OperatorType.ID:   OperatorType,
	ConstraintType.ID: ConstraintType,
	UserType.ID:       UserType,
	LiteralType.ID:    LiteralType,
	ReferenceType.ID:  ReferenceType,
	CallType.ID:       CallType,
}

func IsLiteral(p *Property) bool {
	return p != nil && p.Type == LiteralType
}

func IsReference(p *Property) bool {
	return p != nil && p.Type == ReferenceType
}

func IsCall(p *Property) bool {
	return p != nil && p.Type == CallType
}

// IsExpression reports whether p is one of the three expression kinds.
func IsExpression(p *Property) bool {
	return IsLiteral(p) || IsReference(p) || IsCall(p)
}

// IsType reports whether p participates in the type graph, i.e. p is
// RootType itself or is typed by RootType.
func IsType(p *Property) bool {
	return p != nil && (p == RootType || p.Type == RootType)
}

func IsConstraint(p *Property) bool {
	return p != nil && p.Type == ConstraintType
}

func IsOperator(p *Property) bool {
	return p != nil && p.Type == OperatorType
}

// LooksLikeProperty is the structural shape check used at ingestion
// boundaries: a non-empty string id plus a type that is either RootType by
// identity or itself carries a type one level down. The identity check on
// RootType is what keeps the self-referential graph from recursing.
func LooksLikeProperty(v any) bool {
	p, ok := v.(*Property)
	if !ok || p == nil {
		return false
	}
	if p.ID == "" || p.Type == nil {
		return false
	}
	return p.Type == RootType || p.Type.Type != nil
}
