package gotable

// Operator defines a comparison operator used when filter state is pushed
// down to SQL.
type Operator string

func (o Operator) Valid() bool {
	return o == OperatorIn || o == OperatorLike
}

const (
	// OperatorIn matches a column against a value set.
	OperatorIn Operator = "IN"
	// OperatorLike matches a lower-cased column against a pattern. Patterns
	// use '!' as the escape character.
	OperatorLike Operator = "LIKE"
)

const likeEscape = '!'
