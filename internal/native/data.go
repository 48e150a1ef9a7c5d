package native

import (
	"database/sql"
	"strconv"

	"madola/internal/value"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// connections maps handles to open databases. Evaluation is single-threaded,
// so plain maps suffice.
var (
	connections = map[int64]*sql.DB{}
	nextHandle  int64
)

func dataModule() *Module {
	return &Module{
		Name: "data",
		fns: map[string]Fn{
			"open":   dataOpen,
			"exec":   dataExec,
			"column": dataColumn,
			"value":  dataValue,
			"close":  dataClose,
		},
	}
}

func argText(name string, v value.Value) (string, error) {
	t, ok := v.(*value.Text)
	if !ok {
		return "", value.Errorf(value.ErrType, "%s expects text, got %s", name, v.Type())
	}
	return t.Value, nil
}

func connection(name string, v value.Value) (*sql.DB, error) {
	n, ok := v.(*value.Number)
	if !ok {
		return nil, value.Errorf(value.ErrType, "%s expects a connection handle, got %s", name, v.Type())
	}
	db, ok := connections[int64(n.Value)]
	if !ok {
		return nil, value.Errorf(value.ErrImport, "%s: invalid connection handle %s", name, value.FormatFloat(n.Value))
	}
	return db, nil
}

func dataOpen(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, value.Errorf(value.ErrArity, "data.open expects 2 arguments: driver, dsn")
	}
	driver, err := argText("data.open", args[0])
	if err != nil {
		return nil, err
	}
	dsn, err := argText("data.open", args[1])
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, value.Errorf(value.ErrType, "data.open: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, value.Errorf(value.ErrType, "data.open: %v", err)
	}

	nextHandle++
	connections[nextHandle] = db
	return &value.Number{Value: float64(nextHandle)}, nil
}

// dataExec runs a statement that returns no rows and reports the number of
// affected rows.
func dataExec(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, value.Errorf(value.ErrArity, "data.exec expects 2 arguments: connection, statement")
	}
	db, err := connection("data.exec", args[0])
	if err != nil {
		return nil, err
	}
	stmt, err := argText("data.exec", args[1])
	if err != nil {
		return nil, err
	}

	res, err := db.Exec(stmt)
	if err != nil {
		return nil, value.Errorf(value.ErrType, "data.exec: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		affected = 0
	}
	return &value.Number{Value: float64(affected)}, nil
}

// dataColumn runs a query selecting one column and returns it as a column
// vector.
func dataColumn(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, value.Errorf(value.ErrArity, "data.column expects 2 arguments: connection, query")
	}
	db, err := connection("data.column", args[0])
	if err != nil {
		return nil, err
	}
	query, err := argText("data.column", args[1])
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, value.Errorf(value.ErrType, "data.column: %v", err)
	}
	defer rows.Close()

	elements := []float64{}
	for rows.Next() {
		var cell interface{}
		if err := rows.Scan(&cell); err != nil {
			return nil, value.Errorf(value.ErrType, "data.column: %v", err)
		}
		f, err := numericCell(cell)
		if err != nil {
			return nil, err
		}
		elements = append(elements, f)
	}
	if err := rows.Err(); err != nil {
		return nil, value.Errorf(value.ErrType, "data.column: %v", err)
	}
	return &value.Array{Elements: elements, Column: true}, nil
}

// dataValue runs a query expected to yield exactly one cell.
func dataValue(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, value.Errorf(value.ErrArity, "data.value expects 2 arguments: connection, query")
	}
	db, err := connection("data.value", args[0])
	if err != nil {
		return nil, err
	}
	query, err := argText("data.value", args[1])
	if err != nil {
		return nil, err
	}

	var cell interface{}
	if err := db.QueryRow(query).Scan(&cell); err != nil {
		if err == sql.ErrNoRows {
			return nil, value.Errorf(value.ErrShape, "data.value: query returned no rows")
		}
		return nil, value.Errorf(value.ErrType, "data.value: %v", err)
	}
	f, err := numericCell(cell)
	if err != nil {
		return nil, err
	}
	return &value.Number{Value: f}, nil
}

func dataClose(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, value.Errorf(value.ErrArity, "data.close expects 1 argument: connection")
	}
	n, ok := args[0].(*value.Number)
	if !ok {
		return nil, value.Errorf(value.ErrType, "data.close expects a connection handle, got %s", args[0].Type())
	}
	if db, ok := connections[int64(n.Value)]; ok {
		db.Close()
		delete(connections, int64(n.Value))
	}
	return &value.Number{Value: 0}, nil
}

// numericCell converts a scanned driver value to a float. Drivers hand text
// columns back as byte slices, so numeric-looking text still parses.
func numericCell(v interface{}) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, value.Errorf(value.ErrType, "column contains NULL")
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return 0, value.Errorf(value.ErrType, "non-numeric value %q in column", string(x))
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, value.Errorf(value.ErrType, "non-numeric value %q in column", x)
		}
		return f, nil
	default:
		return 0, value.Errorf(value.ErrType, "non-numeric value %v in column", v)
	}
}
