package gotable

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func Test_tCondition_toGORMExpression(t *testing.T) {
	tests := []struct {
		name      string
		condition tCondition
		wantSQL   string
		wantVars  []any
	}{
		{
			name:      "value set",
			condition: tCondition{Column: "category", Operator: OperatorIn, Value: []string{"food", "rent"}},
			wantSQL:   "category IN ?",
			wantVars:  []any{[]string{"food", "rent"}},
		},
		{
			name:      "search pattern",
			condition: tCondition{Column: "description", Operator: OperatorLike, Value: "%rent%"},
			wantSQL:   "LOWER(description) LIKE ? ESCAPE '!'",
			wantVars:  []any{"%rent%"},
		},
		{
			name:      "always false",
			condition: alwaysFalse,
			wantSQL:   "1 = ?",
			wantVars:  []any{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := tt.condition.toGORMExpression()
			clauseExpr, ok := expr.(clause.Expr)
			require.True(t, ok)

			require.Equal(t, tt.wantSQL, clauseExpr.SQL)
			require.Equal(t, tt.wantVars, clauseExpr.Vars)
		})
	}
}

func Test_tAnyOf_toGORMExpression(t *testing.T) {
	tests := []struct {
		name    string
		group   tAnyOf
		wantNil bool
		wantOr  bool
	}{
		{
			name: "several conditions",
			group: tAnyOf{
				{Column: "description", Operator: OperatorLike, Value: "%a%"},
				{Column: "category", Operator: OperatorLike, Value: "%a%"},
			},
			wantOr: true,
		},
		{
			name:  "single condition",
			group: tAnyOf{{Column: "description", Operator: OperatorLike, Value: "%a%"}},
		},
		{
			name:    "empty group",
			group:   tAnyOf{},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := tt.group.toGORMExpression()
			if (expr == nil) != tt.wantNil {
				t.Fatalf("unexpected expression result: got %v, want nil=%v", expr, tt.wantNil)
			}

			_, isOr := expr.(clause.OrConditions)
			require.Equal(t, tt.wantOr, isOr)
		})
	}
}

func Test_tCNF_toGORMExpression(t *testing.T) {
	tests := []struct {
		name    string
		cnf     tCNF
		wantNil bool
	}{
		{
			name: "non-empty CNF",
			cnf: tCNF{
				{
					{Column: "description", Operator: OperatorLike, Value: "%a%"},
					{Column: "category", Operator: OperatorLike, Value: "%a%"},
				},
				{{Column: "type", Operator: OperatorIn, Value: []string{"EXPENSE"}}},
			},
			wantNil: false,
		},
		{
			name:    "empty CNF",
			cnf:     tCNF{},
			wantNil: true,
		},
		{
			name:    "CNF of empty groups",
			cnf:     tCNF{{}, {}},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := tt.cnf.toGORMExpression()
			if (expr == nil) != tt.wantNil {
				t.Errorf("unexpected expression result: got %v, want nil=%v", expr, tt.wantNil)
			}
		})
	}
}

func Test_tCNF_toSQLClause(t *testing.T) {
	tests := []struct {
		name       string
		cnf        tCNF
		wantSQL    string
		wantValues []driver.Value
	}{
		{
			name:       "empty",
			cnf:        tCNF{},
			wantSQL:    "TRUE",
			wantValues: nil,
		},
		{
			name: "search and value set",
			cnf: tCNF{
				{
					{Column: "description", Operator: OperatorLike, Value: "%rent%"},
					{Column: "category", Operator: OperatorLike, Value: "%rent%"},
				},
				{{Column: "type", Operator: OperatorIn, Value: []string{"EXPENSE", "INCOME"}}},
			},
			wantSQL: "((LOWER(description) LIKE ? ESCAPE '!' OR LOWER(category) LIKE ? ESCAPE '!') AND (type IN (?,?)))",
			wantValues: []driver.Value{
				"%rent%", "%rent%", "EXPENSE", "INCOME",
			},
		},
		{
			name:       "single value set",
			cnf:        tCNF{{{Column: "type", Operator: OperatorIn, Value: []string{"EXPENSE"}}}},
			wantSQL:    "((type IN (?)))",
			wantValues: []driver.Value{"EXPENSE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotValues := tt.cnf.toSQLClause()
			require.Equal(t, tt.wantSQL, gotSQL)
			require.Equal(t, tt.wantValues, gotValues)
		})
	}
}
