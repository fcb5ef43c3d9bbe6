// Package testing provides test utilities for deparse.
package testing

import (
	"os"
	"strings"
	"testing"

	"github.com/zoobzio/dbml"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/deparse"
)

// TestProject builds the DBML project shared by tests: users, posts,
// comments, orders and products.
func TestProject() *dbml.Project {
	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	users.AddColumn(dbml.NewColumn("created_at", "timestamp"))
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("body", "text"))
	posts.AddColumn(dbml.NewColumn("published", "boolean"))
	posts.AddColumn(dbml.NewColumn("views", "int"))
	project.AddTable(posts)

	comments := dbml.NewTable("comments")
	comments.AddColumn(dbml.NewColumn("id", "bigint"))
	comments.AddColumn(dbml.NewColumn("post_id", "bigint"))
	comments.AddColumn(dbml.NewColumn("user_id", "bigint"))
	comments.AddColumn(dbml.NewColumn("body", "text"))
	project.AddTable(comments)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "bigint"))
	products.AddColumn(dbml.NewColumn("name", "varchar"))
	products.AddColumn(dbml.NewColumn("price", "numeric"))
	products.AddColumn(dbml.NewColumn("category", "varchar"))
	project.AddTable(products)

	return project
}

// TestSchema creates a Schema over TestProject.
func TestSchema(t *testing.T) *deparse.Schema {
	t.Helper()

	schema, err := deparse.NewSchema(TestProject())
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return schema
}

// Case is one golden rendering case: a parser AST and the SQL it must
// render to, or the error text rendering must fail with.
type Case struct {
	AST   map[string]any `yaml:"ast"`
	Name  string         `yaml:"name"`
	SQL   string         `yaml:"sql"`
	Error string         `yaml:"error"`
}

// LoadCases reads golden cases from a YAML file.
func LoadCases(t *testing.T, path string) []Case {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read cases: %v", err)
	}

	var cases []Case
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("Failed to parse cases %s: %v", path, err)
	}
	if len(cases) == 0 {
		t.Fatalf("No cases in %s", path)
	}
	return cases
}

// Render decodes ast and renders it with the default renderer.
func Render(ast map[string]any) (string, error) {
	stmt, err := deparse.Decode(ast)
	if err != nil {
		return "", err
	}
	return deparse.ToSQL(stmt)
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertSingleLine fails the test if sql contains a newline or has leading,
// trailing or doubled spaces.
func AssertSingleLine(t *testing.T, sql string) {
	t.Helper()
	if strings.ContainsAny(sql, "\r\n") {
		t.Errorf("SQL contains a newline: %q", sql)
	}
	if strings.TrimSpace(sql) != sql {
		t.Errorf("SQL has leading or trailing whitespace: %q", sql)
	}
	if strings.Contains(sql, "  ") {
		t.Errorf("SQL contains a doubled space: %q", sql)
	}
}
