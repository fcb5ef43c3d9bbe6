package integration

import (
	"testing"

	"github.com/zoobzio/deparse"
	deparsetest "github.com/zoobzio/deparse/testing"
)

// queryCase is a parser AST, the SQL it renders to, and the number of rows
// that SQL returns against the seeded fixtures.
type queryCase struct {
	name string
	ast  string
	sql  string
	rows int
	// backslash marks output that relies on backslash escapes in string
	// literals (MySQL family only).
	backslash bool
	// commaLimit marks output using LIMIT offset,count.
	commaLimit bool
}

// Fixture rows shared by every engine. Quotes use the standard doubled form
// so the same statements load everywhere.
var seedStatements = []string{
	`INSERT INTO users (id, username, email, age, active) VALUES
		(1, 'alice', 'alice@example.com', 30, TRUE),
		(2, 'bob', 'bob@example.com', 17, TRUE),
		(3, 'o''brien', 'ob@example.com', 45, FALSE)`,
	`INSERT INTO posts (id, user_id, title, views, published) VALUES
		(1, 1, 'Hello', 100, TRUE),
		(2, 2, 'Draft', 0, FALSE)`,
	`INSERT INTO orders (id, user_id, total, status) VALUES
		(1, 1, 120.50, 'paid'),
		(2, 1, 30.00, 'pending'),
		(3, 2, 75.00, 'paid'),
		(4, 3, 10.00, 'refunded')`,
}

var queryCases = []queryCase{
	{
		name: "plain select",
		ast: `
type: select
columns:
  - expr: {type: column_ref, column: id}
  - expr: {type: column_ref, column: username}
from: [{table: users}]
`,
		sql:  `SELECT "id", "username" FROM "users"`,
		rows: 3,
	},
	{
		name: "equality with list",
		ast: `
type: select
columns: [{expr: {type: column_ref, column: id}}]
from: [{table: users}]
where:
  type: binary_expr
  operator: "="
  left: {type: column_ref, column: id}
  right: {type: expr_list, value: [{type: number, value: 1}, {type: number, value: 3}]}
`,
		sql:  `SELECT "id" FROM "users" WHERE "id" IN (1, 3)`,
		rows: 2,
	},
	{
		name: "inequality with list",
		ast: `
type: select
columns: [{expr: {type: column_ref, column: id}}]
from: [{table: users}]
where:
  type: binary_expr
  operator: "!="
  left: {type: column_ref, column: id}
  right: {type: expr_list, value: [{type: number, value: 1}]}
`,
		sql:  `SELECT "id" FROM "users" WHERE "id" NOT IN (1)`,
		rows: 2,
	},
	{
		name: "between",
		ast: `
type: select
columns: [{expr: {type: column_ref, column: username}}]
from: [{table: users}]
where:
  type: binary_expr
  operator: BETWEEN
  left: {type: column_ref, column: age}
  right: {type: expr_list, value: [{type: number, value: 18}, {type: number, value: 65}]}
`,
		sql:  `SELECT "username" FROM "users" WHERE "age" BETWEEN 18 AND 65`,
		rows: 2,
	},
	{
		name: "left join",
		ast: `
type: select
columns:
  - expr: {type: column_ref, table: u, column: username}
  - expr: {type: column_ref, table: o, column: total}
from:
  - {table: users, as: u}
  - table: orders
    as: o
    join: LEFT JOIN
    on:
      type: binary_expr
      operator: "="
      left: {type: column_ref, table: u, column: id}
      right: {type: column_ref, table: o, column: user_id}
`,
		sql:  `SELECT "u"."username", "o"."total" FROM "users" AS "u" LEFT JOIN "orders" AS "o" ON "u"."id" = "o"."user_id"`,
		rows: 4,
	},
	{
		name: "group by having",
		ast: `
type: select
columns:
  - expr: {type: column_ref, column: user_id}
  - expr: {type: aggr_func, name: COUNT, args: {expr: {type: star, value: "*"}}}
    as: n
from: [{table: orders}]
groupby: [{type: column_ref, column: user_id}]
having:
  type: binary_expr
  operator: ">"
  left: {type: aggr_func, name: COUNT, args: {expr: {type: star, value: "*"}}}
  right: {type: number, value: 1}
`,
		sql:  `SELECT "user_id", COUNT(*) AS "n" FROM "orders" GROUP BY "user_id" HAVING COUNT(*) > 1`,
		rows: 1,
	},
	{
		name: "order by alias",
		ast: `
type: select
columns:
  - expr: {type: column_ref, column: user_id}
  - expr: {type: aggr_func, name: SUM, args: {expr: {type: column_ref, column: total}}}
    as: spent
from: [{table: orders}]
groupby: [{type: column_ref, column: user_id}]
orderby:
  - {expr: {type: column_ref, column: spent}, type: DESC}
`,
		sql:  `SELECT "user_id", SUM("total") AS "spent" FROM "orders" GROUP BY "user_id" ORDER BY "spent" DESC`,
		rows: 3,
	},
	{
		name: "limit",
		ast: `
type: select
columns: [{expr: {type: column_ref, column: id}}]
from: [{table: users}]
orderby: [{expr: {type: column_ref, column: id}, type: ASC}]
limit: [{type: number, value: 2}]
`,
		sql:  `SELECT "id" FROM "users" ORDER BY "id" ASC LIMIT 2`,
		rows: 2,
	},
	{
		name: "offset limit",
		ast: `
type: select
columns: [{expr: {type: column_ref, column: id}}]
from: [{table: orders}]
orderby: [{expr: {type: column_ref, column: id}, type: ASC}]
limit: [{type: number, value: 1}, {type: number, value: 2}]
`,
		sql:        `SELECT "id" FROM "orders" ORDER BY "id" ASC LIMIT 1,2`,
		rows:       2,
		commaLimit: true,
	},
	{
		name: "union",
		ast: `
type: select
columns: [{expr: {type: column_ref, column: id}}]
from: [{table: users}]
_next:
  type: select
  columns: [{expr: {type: column_ref, column: user_id}}]
  from: [{table: orders}]
`,
		sql:  `SELECT "id" FROM "users" UNION SELECT "user_id" FROM "orders"`,
		rows: 3,
	},
	{
		name: "sub-select in where",
		ast: `
type: select
columns: [{expr: {type: column_ref, column: username}}]
from: [{table: users}]
where:
  type: binary_expr
  operator: IN
  left: {type: column_ref, column: id}
  right:
    type: select
    parentheses: true
    columns: [{expr: {type: column_ref, column: user_id}}]
    from: [{table: orders}]
    where:
      type: binary_expr
      operator: "="
      left: {type: column_ref, column: status}
      right: {type: string, value: paid}
`,
		sql:  `SELECT "username" FROM "users" WHERE "id" IN (SELECT "user_id" FROM "orders" WHERE "status" = 'paid')`,
		rows: 2,
	},
	{
		name: "derived table",
		ast: `
type: select
columns: [{expr: {type: column_ref, table: sq, column: user_id}}]
from:
  - table: null
    as: sq
    expr:
      type: select
      columns: [{expr: {type: column_ref, column: user_id}}]
      from: [{table: orders}]
      where:
        type: binary_expr
        operator: ">"
        left: {type: column_ref, column: total}
        right: {type: number, value: 50}
`,
		sql:  `SELECT "sq"."user_id" FROM (SELECT "user_id" FROM "orders" WHERE "total" > 50) AS "sq"`,
		rows: 2,
	},
	{
		name: "case",
		ast: `
type: select
columns:
  - expr:
      type: case
      args:
        - type: when
          cond:
            type: binary_expr
            operator: ">"
            left: {type: column_ref, column: age}
            right: {type: number, value: 17}
          result: {type: string, value: adult}
        - type: else
          result: {type: string, value: minor}
    as: bracket
from: [{table: users}]
`,
		sql:  `SELECT CASE WHEN "age" > 17 THEN 'adult' ELSE 'minor' END AS "bracket" FROM "users"`,
		rows: 3,
	},
	{
		name: "cast and function",
		ast: `
type: select
columns:
  - expr:
      type: cast
      expr: {type: column_ref, column: id}
      target: {dataType: CHAR, length: 10}
  - expr:
      type: function
      name: COALESCE
      args:
        type: expr_list
        value: [{type: column_ref, column: age}, {type: number, value: 0}]
from: [{table: users}]
`,
		sql:  `SELECT CAST("id" AS CHAR(10)), COALESCE("age", 0) FROM "users"`,
		rows: 3,
	},
	{
		name: "boolean and like",
		ast: `
type: select
columns: [{expr: {type: column_ref, column: id}}]
from: [{table: users}]
where:
  type: binary_expr
  operator: AND
  left:
    type: binary_expr
    operator: "="
    left: {type: column_ref, column: active}
    right: {type: bool, value: true}
  right:
    type: binary_expr
    operator: LIKE
    parentheses: true
    left: {type: column_ref, column: email}
    right: {type: string, value: "%@example.com"}
`,
		sql:  `SELECT "id" FROM "users" WHERE "active" = TRUE AND ("email" LIKE '%@example.com')`,
		rows: 2,
	},
	{
		name: "is null",
		ast: `
type: select
columns: [{expr: {type: column_ref, column: id}}]
from: [{table: users}]
where:
  type: binary_expr
  operator: IS
  left: {type: column_ref, column: age}
  right: {type: "null", value: null}
`,
		sql:  `SELECT "id" FROM "users" WHERE "age" IS NULL`,
		rows: 0,
	},
	{
		name: "distinct",
		ast: `
type: select
distinct: DISTINCT
columns: [{expr: {type: column_ref, column: status}}]
from: [{table: orders}]
`,
		sql:  `SELECT DISTINCT "status" FROM "orders"`,
		rows: 3,
	},
	{
		name: "count distinct",
		ast: `
type: select
columns:
  - expr: {type: aggr_func, name: COUNT, args: {distinct: DISTINCT, expr: {type: column_ref, column: status}}}
from: [{table: orders}]
`,
		sql:  `SELECT COUNT(DISTINCT "status") FROM "orders"`,
		rows: 1,
	},
	{
		name: "escaped string",
		ast: `
type: select
columns: [{expr: {type: column_ref, column: id}}]
from: [{table: users}]
where:
  type: binary_expr
  operator: "="
  left: {type: column_ref, column: username}
  right: {type: string, value: "o'brien"}
`,
		sql:       `SELECT "id" FROM "users" WHERE "username" = 'o\'brien'`,
		rows:      1,
		backslash: true,
	},
}

// renderCase decodes qc, validates it against the test schema and renders
// it, checking the rendered text.
func renderCase(t *testing.T, qc queryCase) string {
	t.Helper()

	stmt, err := deparse.DecodeYAML([]byte(qc.ast))
	deparsetest.AssertNoError(t, err)

	schema := deparsetest.TestSchema(t)
	if err := schema.Validate(stmt); err != nil {
		t.Fatalf("Schema validation failed: %v", err)
	}

	sql, err := deparse.ToSQL(stmt)
	deparsetest.AssertNoError(t, err)
	deparsetest.AssertSQL(t, qc.sql, sql)
	return sql
}
