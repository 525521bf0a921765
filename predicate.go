package gotable

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

type (
	tCondition struct {
		Column   string
		Operator Operator
		Value    any
	}

	// tAnyOf is a group of conditions joined by OR.
	tAnyOf []tCondition

	// tCNF represents the conjunctive normal form (CNF) of the filter state.
	// Each group is joined by AND, and each group consists of conditions
	// joined by OR. The free-text search becomes one group with a LIKE
	// condition per search column; each value-set filter becomes a group
	// with a single IN condition.
	//
	// Thus:
	//
	//	CNF = X1 AND X2 ... AND Xn, where Xi = Ai1 OR Ai2 ... OR Aim.
	//	CNF = (LOWER(a) LIKE ? OR LOWER(b) LIKE ?) AND (c IN (?, ?))
	tCNF []tAnyOf
)

// alwaysFalse is used for a search query without search columns.
var alwaysFalse = tCondition{Column: "1", Operator: "=", Value: 0}

// toSQLClause converts a condition to an SQL fragment with placeholders.
//
// Example:
//
//	tCondition{Column: "category", Operator: "IN", Value: []string{"a", "b"}}
//
// Result:
//
//	("category IN (?,?)", ["a", "b"])
func (c tCondition) toSQLClause() (string, []driver.Value) {
	switch c.Operator {
	case OperatorIn:
		values, _ := c.Value.([]string)
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
		args := make([]driver.Value, 0, len(values))
		for _, v := range values {
			args = append(args, v)
		}

		return fmt.Sprintf("%s IN (%s)", c.Column, placeholders), args
	case OperatorLike:
		return fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '%c'", c.Column, likeEscape), []driver.Value{c.Value}
	default:
		return fmt.Sprintf("%s %s ?", c.Column, c.Operator), []driver.Value{c.Value}
	}
}

// toGORMExpression converts a condition into a clause.Expression. Value
// sets are expanded by gorm.
func (c tCondition) toGORMExpression() clause.Expression {
	switch c.Operator {
	case OperatorIn:
		return clause.Expr{
			SQL:  fmt.Sprintf("%s IN ?", c.Column),
			Vars: []any{c.Value},
		}
	default:
		sqlClause, args := c.toSQLClause()
		vars := make([]any, 0, len(args))
		for _, arg := range args {
			vars = append(vars, arg)
		}

		return clause.Expr{
			SQL:  sqlClause,
			Vars: vars,
		}
	}
}

// toGORMExpression converts a group (K1, K2, K3) into "K1 OR K2 OR K3".
func (g tAnyOf) toGORMExpression() clause.Expression {
	orExpressions := make([]clause.Expression, 0, len(g))
	for _, condition := range g {
		orExpressions = append(orExpressions, condition.toGORMExpression())
	}

	if len(orExpressions) == 1 {
		return orExpressions[0]
	} else if len(orExpressions) > 1 {
		return clause.Or(orExpressions...)
	}

	return nil
}

// toSQLClause converts a group (K1, K2) into "(K1 OR K2)" with its values.
func (g tAnyOf) toSQLClause() (string, []driver.Value) {
	orClauses := make([]string, 0, len(g))
	orValues := make([]driver.Value, 0, len(g))

	for _, condition := range g {
		orClause, values := condition.toSQLClause()
		orClauses = append(orClauses, orClause)
		orValues = append(orValues, values...)
	}

	if len(orClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(orClauses, " OR ")), orValues
	}

	return "", nil
}

// toGORMExpression joins all groups with AND.
func (c tCNF) toGORMExpression() clause.Expression {
	andExpressions := make([]clause.Expression, 0, len(c))

	for _, group := range c {
		expr := group.toGORMExpression()
		if expr == nil {
			continue
		}

		andExpressions = append(andExpressions, expr)
	}

	if len(andExpressions) == 1 {
		return andExpressions[0]
	} else if len(andExpressions) > 1 {
		return clause.And(andExpressions...)
	}

	return nil
}

// toSQLClause joins all groups with AND. An empty CNF yields "TRUE".
//
// Example:
//
//	tCNF = {
//		{{Column: "description", Operator: "LIKE", Value: "%rent%"}},
//		{{Column: "type", Operator: "IN", Value: []string{"EXPENSE"}}},
//	}
//
// Result:
//
//	("((LOWER(description) LIKE ? ESCAPE '!') AND (type IN (?)))", ["%rent%", "EXPENSE"])
func (c tCNF) toSQLClause() (string, []driver.Value) {
	andClauses := make([]string, 0, len(c))
	values := make([]driver.Value, 0, len(c))

	for _, group := range c {
		andClause, andValues := group.toSQLClause()
		if andClause == "" {
			continue
		}

		andClauses = append(andClauses, andClause)
		values = append(values, andValues...)
	}

	if len(andClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(andClauses, " AND ")), values
	}

	return "TRUE", nil
}

// escapeLike escapes LIKE wildcards so that the query is matched literally.
func escapeLike(s string) string {
	e := string(likeEscape)

	return strings.NewReplacer(e, e+e, "%", e+"%", "_", e+"_").Replace(s)
}
