package testing

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// TestSchema Tests
// =============================================================================

func TestTestSchema(t *testing.T) {
	schema := TestSchema(t)
	if schema == nil {
		t.Fatal("Expected non-nil schema")
	}

	for _, table := range []string{"users", "posts", "comments", "orders", "products"} {
		if !schema.HasTable(table) {
			t.Errorf("Expected table %q in test schema", table)
		}
	}
	if !schema.HasColumn("users", "email") {
		t.Error("Expected users.email in test schema")
	}
	if schema.HasColumn("users", "title") {
		t.Error("Did not expect users.title in test schema")
	}
}

// =============================================================================
// LoadCases Tests
// =============================================================================

func TestLoadCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	content := `
- name: star
  ast:
    type: select
    columns: "*"
    from:
      - table: users
  sql: SELECT * FROM "users"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cases := LoadCases(t, path)
	if len(cases) != 1 {
		t.Fatalf("len(cases) = %d, want 1", len(cases))
	}
	if cases[0].Name != "star" {
		t.Errorf("Name = %q, want star", cases[0].Name)
	}

	sql, err := Render(cases[0].AST)
	AssertNoError(t, err)
	AssertSQL(t, cases[0].SQL, sql)
}

// =============================================================================
// Assert* Tests
// =============================================================================

func TestAssertSQL_Match(t *testing.T) {
	AssertSQL(t, `SELECT * FROM "users"`, `SELECT * FROM "users"`)
}

func TestAssertNoError_Nil(t *testing.T) {
	AssertNoError(t, nil)
}

func TestAssertError_Error(t *testing.T) {
	AssertError(t, errors.New("test error"))
}

func TestAssertErrorContains_Match(t *testing.T) {
	AssertErrorContains(t, errors.New("unsupported statement \"insert\""), "insert")
}

func TestAssertSingleLine_Clean(t *testing.T) {
	AssertSingleLine(t, `SELECT "id" FROM "users" WHERE "id" = 1`)
}
