package native

import (
	"math"
	"path/filepath"
	"testing"

	"madola/internal/value"
)

func text(s string) *value.Text { return &value.Text{Value: s} }

func openTestDB(t *testing.T) value.Value {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	handle, err := dataOpen([]value.Value{text("sqlite3"), text(path)})
	if err != nil {
		t.Fatalf("data.open failed: %v", err)
	}
	t.Cleanup(func() {
		dataClose([]value.Value{handle})
	})
	return handle
}

func mustExec(t *testing.T, handle value.Value, stmt string) {
	t.Helper()
	if _, err := dataExec([]value.Value{handle, text(stmt)}); err != nil {
		t.Fatalf("data.exec %q failed: %v", stmt, err)
	}
}

func TestDataColumn(t *testing.T) {
	h := openTestDB(t)
	mustExec(t, h, "CREATE TABLE readings (t REAL, v REAL)")
	mustExec(t, h, "INSERT INTO readings VALUES (0, 1.5), (1, 2.5), (2, 4)")

	v, err := dataColumn([]value.Value{h, text("SELECT v FROM readings ORDER BY t")})
	if err != nil {
		t.Fatalf("data.column failed: %v", err)
	}
	arr, ok := v.(*value.Array)
	if !ok {
		t.Fatalf("data.column returned %T, want Array", v)
	}
	if !arr.Column {
		t.Fatal("data.column result is not column-oriented")
	}
	expected := []float64{1.5, 2.5, 4}
	if len(arr.Elements) != len(expected) {
		t.Fatalf("got %d elements, want %d", len(arr.Elements), len(expected))
	}
	for i, f := range expected {
		if math.Abs(arr.Elements[i]-f) > 1e-9 {
			t.Fatalf("element %d = %v, want %v", i, arr.Elements[i], f)
		}
	}
}

func TestDataValue(t *testing.T) {
	h := openTestDB(t)
	mustExec(t, h, "CREATE TABLE readings (v REAL)")
	mustExec(t, h, "INSERT INTO readings VALUES (1.5), (2.5), (4)")

	v, err := dataValue([]value.Value{h, text("SELECT COUNT(*) FROM readings")})
	if err != nil {
		t.Fatalf("data.value failed: %v", err)
	}
	n, ok := v.(*value.Number)
	if !ok {
		t.Fatalf("data.value returned %T, want Number", v)
	}
	if n.Value != 3 {
		t.Fatalf("data.value = %v, want 3", n.Value)
	}
}

func TestDataValueNoRows(t *testing.T) {
	h := openTestDB(t)
	mustExec(t, h, "CREATE TABLE readings (v REAL)")

	_, err := dataValue([]value.Value{h, text("SELECT v FROM readings")})
	if err == nil {
		t.Fatal("data.value of an empty result did not fail")
	}
	wantKind(t, err, value.ErrShape)
}

func TestDataColumnNonNumeric(t *testing.T) {
	h := openTestDB(t)
	mustExec(t, h, "CREATE TABLE notes (s TEXT)")
	mustExec(t, h, "INSERT INTO notes VALUES ('beam AB')")

	_, err := dataColumn([]value.Value{h, text("SELECT s FROM notes")})
	if err == nil {
		t.Fatal("data.column over text did not fail")
	}
	wantKind(t, err, value.ErrType)
}

func TestDataBadHandle(t *testing.T) {
	_, err := dataColumn([]value.Value{&value.Number{Value: 9999}, text("SELECT 1")})
	if err == nil {
		t.Fatal("data.column with a bad handle did not fail")
	}
	wantKind(t, err, value.ErrImport)
}

func TestDataCloseInvalidatesHandle(t *testing.T) {
	h := openTestDB(t)
	mustExec(t, h, "CREATE TABLE readings (v REAL)")

	if _, err := dataClose([]value.Value{h}); err != nil {
		t.Fatalf("data.close failed: %v", err)
	}
	_, err := dataColumn([]value.Value{h, text("SELECT v FROM readings")})
	if err == nil {
		t.Fatal("data.column after close did not fail")
	}
	wantKind(t, err, value.ErrImport)
}

func TestDataBadDriver(t *testing.T) {
	_, err := dataOpen([]value.Value{text("no-such-driver"), text("dsn")})
	if err == nil {
		t.Fatal("data.open with an unknown driver did not fail")
	}
	wantKind(t, err, value.ErrType)
}
