package parser

import (
	"strings"
	"testing"

	"madola/internal/ast"
	"madola/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New(input)
	p := New(l, input)
	program := p.ParseProgram()
	checkParserErrors(t, p)
	return program
}

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errors := p.Errors()
	if len(errors) == 0 {
		return
	}

	t.Errorf("parser has %d errors", len(errors))
	for _, msg := range errors {
		t.Errorf("parser error: %q", msg)
	}
	t.FailNow()
}

func TestVersionStatement(t *testing.T) {
	input := `@version 0.01
x := 5;`

	program := parseProgram(t, input)

	if len(program.Statements) != 2 {
		t.Fatalf("program has %d statements, want 2", len(program.Statements))
	}

	stmt, ok := program.Statements[0].(*ast.VersionStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.VersionStatement", program.Statements[0])
	}
	if stmt.Version != "0.01" {
		t.Errorf("version is %q, want %q", stmt.Version, "0.01")
	}
}

func TestAssignmentStatements(t *testing.T) {
	tests := []struct {
		input        string
		expectedName string
	}{
		{"x := 5;", "x"},
		{"span := 2 * 4;", "span"},
		{"label := \"beam AB\";", "label"},
	}

	for i, tt := range tests {
		program := parseProgram(t, tt.input)

		if len(program.Statements) != 1 {
			t.Fatalf("tests[%d] - program has %d statements, want 1", i, len(program.Statements))
		}
		stmt, ok := program.Statements[0].(*ast.AssignmentStatement)
		if !ok {
			t.Fatalf("tests[%d] - statement is %T, want *ast.AssignmentStatement", i, program.Statements[0])
		}
		if stmt.Name.Value != tt.expectedName {
			t.Errorf("tests[%d] - name is %q, want %q", i, stmt.Name.Value, tt.expectedName)
		}
	}
}

func TestArrayAssignmentStatement(t *testing.T) {
	input := `L[0] := 10;`

	program := parseProgram(t, input)

	if len(program.Statements) != 1 {
		t.Fatalf("program has %d statements, want 1", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ArrayAssignmentStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ArrayAssignmentStatement", program.Statements[0])
	}
	if stmt.Name.Value != "L" {
		t.Errorf("name is %q, want %q", stmt.Name.Value, "L")
	}
	if stmt.Index.String() != "0" {
		t.Errorf("index is %q, want %q", stmt.Index.String(), "0")
	}
	if stmt.Value.String() != "10" {
		t.Errorf("value is %q, want %q", stmt.Value.String(), "10")
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b);"},
		{"!a == b", "((!a) == b);"},
		{"a + b * c", "(a + (b * c));"},
		{"a + b / c", "(a + (b / c));"},
		{"a * b % c", "((a * b) % c);"},
		{"(a + b) * c", "((a + b) * c);"},
		{"a < b == c", "((a < b) == c);"},
		{"a <= b != c >= d", "((a <= b) != (c >= d));"},
		{"a && b || c && d", "((a && b) || (c && d));"},
		{"a == b && c == d", "((a == b) && (c == d));"},
		{"a * b ^ c", "(a * (b ^ c));"},
		{"a ^ b ^ c", "(a ^ (b ^ c));"},
		{"-a ^ b", "(-(a ^ b));"},
		{"f(a) + 1", "(f(a) + 1);"},
		{"f(a, b * c)", "f(a, (b * c));"},
		{"xs[1] + 1", "((xs[1]) + 1);"},
		{"m.det() * 2", "(m.det() * 2);"},
		{"-m.tr()", "(-m.tr());"},
	}

	for i, tt := range tests {
		program := parseProgram(t, tt.input)

		actual := strings.TrimSpace(program.String())
		if actual != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, actual)
		}
	}
}

func TestUnitLiterals(t *testing.T) {
	tests := []struct {
		input         string
		expectedValue float64
		expectedUnit  string
	}{
		{"x := 10 m;", 10, "m"},
		{"g := 9.81 m/s^2;", 9.81, "m/s^2"},
		{"M := 12 kip*ft;", 12, "kip*ft"},
		{"I := 400 in4;", 400, "in4"},
		{"p := 2.5 ksi;", 2.5, "ksi"},
	}

	for i, tt := range tests {
		program := parseProgram(t, tt.input)

		stmt, ok := program.Statements[0].(*ast.AssignmentStatement)
		if !ok {
			t.Fatalf("tests[%d] - statement is %T, want *ast.AssignmentStatement", i, program.Statements[0])
		}
		lit, ok := stmt.Value.(*ast.UnitLiteral)
		if !ok {
			t.Fatalf("tests[%d] - value is %T, want *ast.UnitLiteral", i, stmt.Value)
		}
		if lit.Value != tt.expectedValue {
			t.Errorf("tests[%d] - value is %v, want %v", i, lit.Value, tt.expectedValue)
		}
		if lit.Unit != tt.expectedUnit {
			t.Errorf("tests[%d] - unit is %q, want %q", i, lit.Unit, tt.expectedUnit)
		}
	}
}

func TestUnitLiteralStopsAtNonUnit(t *testing.T) {
	// the slash before a plain identifier is division, not part of the unit
	input := `y := 10 m / x;`

	program := parseProgram(t, input)

	stmt := program.Statements[0].(*ast.AssignmentStatement)
	infix, ok := stmt.Value.(*ast.InfixExpression)
	if !ok {
		t.Fatalf("value is %T, want *ast.InfixExpression", stmt.Value)
	}
	if infix.Operator != "/" {
		t.Errorf("operator is %q, want %q", infix.Operator, "/")
	}
	lit, ok := infix.Left.(*ast.UnitLiteral)
	if !ok {
		t.Fatalf("left is %T, want *ast.UnitLiteral", infix.Left)
	}
	if lit.Unit != "m" {
		t.Errorf("unit is %q, want %q", lit.Unit, "m")
	}
}

func TestImaginaryLiteral(t *testing.T) {
	input := `z := 3 + 2i;`

	program := parseProgram(t, input)

	stmt := program.Statements[0].(*ast.AssignmentStatement)
	infix, ok := stmt.Value.(*ast.InfixExpression)
	if !ok {
		t.Fatalf("value is %T, want *ast.InfixExpression", stmt.Value)
	}
	im, ok := infix.Right.(*ast.ImaginaryLiteral)
	if !ok {
		t.Fatalf("right is %T, want *ast.ImaginaryLiteral", infix.Right)
	}
	if im.Value != 2 {
		t.Errorf("imaginary component is %v, want 2", im.Value)
	}
}

func TestArrayLiterals(t *testing.T) {
	tests := []struct {
		input        string
		expectedRows [][]string
	}{
		{"[1, 2, 3]", [][]string{{"1", "2", "3"}}},
		{"[1, 2; 3, 4]", [][]string{{"1", "2"}, {"3", "4"}}},
		{"[1; 2; 3]", [][]string{{"1"}, {"2"}, {"3"}}},
		{"[a + 1, b * 2]", [][]string{{"(a + 1)", "(b * 2)"}}},
	}

	for i, tt := range tests {
		program := parseProgram(t, tt.input)

		stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("tests[%d] - statement is %T, want *ast.ExpressionStatement", i, program.Statements[0])
		}
		lit, ok := stmt.Expression.(*ast.ArrayLiteral)
		if !ok {
			t.Fatalf("tests[%d] - expression is %T, want *ast.ArrayLiteral", i, stmt.Expression)
		}
		if len(lit.Rows) != len(tt.expectedRows) {
			t.Fatalf("tests[%d] - literal has %d rows, want %d", i, len(lit.Rows), len(tt.expectedRows))
		}
		for r, row := range tt.expectedRows {
			if len(lit.Rows[r]) != len(row) {
				t.Fatalf("tests[%d] - row %d has %d elements, want %d", i, r, len(lit.Rows[r]), len(row))
			}
			for c, want := range row {
				if got := lit.Rows[r][c].String(); got != want {
					t.Errorf("tests[%d] - element [%d][%d] is %q, want %q", i, r, c, got, want)
				}
			}
		}
	}
}

func TestEmptyArrayLiteral(t *testing.T) {
	program := parseProgram(t, "xs := [];")

	stmt := program.Statements[0].(*ast.AssignmentStatement)
	lit, ok := stmt.Value.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("value is %T, want *ast.ArrayLiteral", stmt.Value)
	}
	if len(lit.Rows) != 0 {
		t.Errorf("literal has %d rows, want 0", len(lit.Rows))
	}
}

func TestFunctionDeclaration(t *testing.T) {
	input := `fn area(b, h) {
	return b * h;
}`

	program := parseProgram(t, input)

	stmt, ok := program.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.FunctionDeclaration", program.Statements[0])
	}
	if stmt.Name.Value != "area" {
		t.Errorf("name is %q, want %q", stmt.Name.Value, "area")
	}
	if len(stmt.Parameters) != 2 {
		t.Fatalf("declaration has %d parameters, want 2", len(stmt.Parameters))
	}
	if stmt.Parameters[0].Value != "b" || stmt.Parameters[1].Value != "h" {
		t.Errorf("parameters are %q %q, want b h", stmt.Parameters[0].Value, stmt.Parameters[1].Value)
	}
	if len(stmt.Body.Statements) != 1 {
		t.Fatalf("body has %d statements, want 1", len(stmt.Body.Statements))
	}
}

func TestPiecewiseDeclaration(t *testing.T) {
	input := `piecewise load(x) {
	case (x < 2): 10 * x;
	case (x < 5): 20;
	otherwise: 0;
}`

	program := parseProgram(t, input)

	stmt, ok := program.Statements[0].(*ast.PiecewiseFunctionDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.PiecewiseFunctionDeclaration", program.Statements[0])
	}
	if stmt.Name.Value != "load" {
		t.Errorf("name is %q, want %q", stmt.Name.Value, "load")
	}
	if len(stmt.Parameters) != 1 {
		t.Fatalf("declaration has %d parameters, want 1", len(stmt.Parameters))
	}
	if len(stmt.Cases) != 3 {
		t.Fatalf("declaration has %d cases, want 3", len(stmt.Cases))
	}
	if stmt.Cases[0].Condition == nil || stmt.Cases[1].Condition == nil {
		t.Errorf("case conditions should not be nil")
	}
	if stmt.Cases[2].Condition != nil {
		t.Errorf("otherwise arm should have a nil condition")
	}
}

func TestForStatement(t *testing.T) {
	input := `for (i := 1...5) {
	total := total + i;
}`

	program := parseProgram(t, input)

	stmt, ok := program.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ForStatement", program.Statements[0])
	}
	if stmt.Var.Value != "i" {
		t.Errorf("loop variable is %q, want %q", stmt.Var.Value, "i")
	}
	if stmt.From.String() != "1" {
		t.Errorf("from is %q, want %q", stmt.From.String(), "1")
	}
	if stmt.To.String() != "5" {
		t.Errorf("to is %q, want %q", stmt.To.String(), "5")
	}
	if len(stmt.Body.Statements) != 1 {
		t.Fatalf("body has %d statements, want 1", len(stmt.Body.Statements))
	}
}

func TestWhileStatement(t *testing.T) {
	input := `while (n < 10) {
	n := n + 1;
}`

	program := parseProgram(t, input)

	stmt, ok := program.Statements[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.WhileStatement", program.Statements[0])
	}
	if stmt.Condition.String() != "(n < 10)" {
		t.Errorf("condition is %q, want %q", stmt.Condition.String(), "(n < 10)")
	}
}

func TestIfElseChain(t *testing.T) {
	input := `if (x > 1) {
	a := 1;
} else if (x > 0) {
	a := 2;
} else {
	a := 3;
}`

	program := parseProgram(t, input)

	stmt, ok := program.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.IfStatement", program.Statements[0])
	}
	if stmt.Alternative == nil {
		t.Fatalf("alternative should not be nil")
	}
	if len(stmt.Alternative.Statements) != 1 {
		t.Fatalf("alternative has %d statements, want 1", len(stmt.Alternative.Statements))
	}
	nested, ok := stmt.Alternative.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("alternative statement is %T, want *ast.IfStatement", stmt.Alternative.Statements[0])
	}
	if nested.Alternative == nil {
		t.Fatalf("nested alternative should not be nil")
	}
}

func TestImportStatements(t *testing.T) {
	tests := []struct {
		input          string
		expectedModule string
		expectedAlias  string
	}{
		{"import beams;", "beams", ""},
		{"import beams as b;", "beams", "b"},
	}

	for i, tt := range tests {
		program := parseProgram(t, tt.input)

		stmt, ok := program.Statements[0].(*ast.ImportStatement)
		if !ok {
			t.Fatalf("tests[%d] - statement is %T, want *ast.ImportStatement", i, program.Statements[0])
		}
		if stmt.Module.Value != tt.expectedModule {
			t.Errorf("tests[%d] - module is %q, want %q", i, stmt.Module.Value, tt.expectedModule)
		}
		if tt.expectedAlias == "" && stmt.Alias != nil {
			t.Errorf("tests[%d] - alias is %q, want none", i, stmt.Alias.Value)
		}
		if tt.expectedAlias != "" && (stmt.Alias == nil || stmt.Alias.Value != tt.expectedAlias) {
			t.Errorf("tests[%d] - alias missing or wrong, want %q", i, tt.expectedAlias)
		}
	}
}

func TestMethodCallExpressions(t *testing.T) {
	tests := []struct {
		input          string
		expectedMethod string
		expectedArgs   int
	}{
		{"math.sin(x);", "sin", 1},
		{"a.det();", "det", 0},
		{"b.span(8, 2);", "span", 2},
	}

	for i, tt := range tests {
		program := parseProgram(t, tt.input)

		stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("tests[%d] - statement is %T, want *ast.ExpressionStatement", i, program.Statements[0])
		}
		call, ok := stmt.Expression.(*ast.MethodCallExpression)
		if !ok {
			t.Fatalf("tests[%d] - expression is %T, want *ast.MethodCallExpression", i, stmt.Expression)
		}
		if call.Method != tt.expectedMethod {
			t.Errorf("tests[%d] - method is %q, want %q", i, call.Method, tt.expectedMethod)
		}
		if len(call.Arguments) != tt.expectedArgs {
			t.Errorf("tests[%d] - call has %d arguments, want %d", i, len(call.Arguments), tt.expectedArgs)
		}
	}
}

func TestReturnStatements(t *testing.T) {
	input := `fn f(x) {
	return;
}
fn g(x) {
	return x + 1;
}`

	program := parseProgram(t, input)

	f := program.Statements[0].(*ast.FunctionDeclaration)
	ret := f.Body.Statements[0].(*ast.ReturnStatement)
	if ret.ReturnValue != nil {
		t.Errorf("bare return should carry no value, got %s", ret.ReturnValue.String())
	}

	g := program.Statements[1].(*ast.FunctionDeclaration)
	ret = g.Body.Statements[0].(*ast.ReturnStatement)
	if ret.ReturnValue == nil {
		t.Fatalf("return with value parsed as bare return")
	}
	if ret.ReturnValue.String() != "(x + 1)" {
		t.Errorf("return value is %q, want %q", ret.ReturnValue.String(), "(x + 1)")
	}
}

func TestDocumentStatements(t *testing.T) {
	input := `## Loads
> Applied at midspan.
// reviewed 2024
skip;`

	program := parseProgram(t, input)

	if len(program.Statements) != 4 {
		t.Fatalf("program has %d statements, want 4", len(program.Statements))
	}

	heading, ok := program.Statements[0].(*ast.HeadingStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.HeadingStatement", program.Statements[0])
	}
	if heading.Level != 2 {
		t.Errorf("heading level is %d, want 2", heading.Level)
	}
	if heading.Text != "Loads" {
		t.Errorf("heading text is %q, want %q", heading.Text, "Loads")
	}

	para, ok := program.Statements[1].(*ast.ParagraphStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ParagraphStatement", program.Statements[1])
	}
	if para.Text != "Applied at midspan." {
		t.Errorf("paragraph text is %q, want %q", para.Text, "Applied at midspan.")
	}

	comment, ok := program.Statements[2].(*ast.CommentStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.CommentStatement", program.Statements[2])
	}
	if comment.Text != "reviewed 2024" {
		t.Errorf("comment text is %q, want %q", comment.Text, "reviewed 2024")
	}

	if _, ok := program.Statements[3].(*ast.SkipStatement); !ok {
		t.Fatalf("statement is %T, want *ast.SkipStatement", program.Statements[3])
	}
}

func TestDecoratedStatement(t *testing.T) {
	input := `@hide x := 5;`

	program := parseProgram(t, input)

	dec, ok := program.Statements[0].(*ast.DecoratedStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.DecoratedStatement", program.Statements[0])
	}
	if dec.Name != "hide" {
		t.Errorf("decoration name is %q, want %q", dec.Name, "hide")
	}
	if _, ok := dec.Statement.(*ast.AssignmentStatement); !ok {
		t.Fatalf("wrapped statement is %T, want *ast.AssignmentStatement", dec.Statement)
	}
}

func TestPrintStatement(t *testing.T) {
	input := `print(x + 1);`

	program := parseProgram(t, input)

	stmt, ok := program.Statements[0].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.PrintStatement", program.Statements[0])
	}
	if stmt.Value.String() != "(x + 1)" {
		t.Errorf("value is %q, want %q", stmt.Value.String(), "(x + 1)")
	}
}

func TestParserErrors(t *testing.T) {
	tests := []string{
		"x := ;",
		"fn f( {",
		"for (i := 1) {}",
		"piecewise p(x) {}",
		"(a + b() := 2;",
		"if (x > 1 { a := 1; }",
	}

	for i, input := range tests {
		l := lexer.New(input)
		p := New(l, input)
		p.ParseProgram()

		if len(p.Errors()) == 0 {
			t.Errorf("tests[%d] - expected parser errors for %q, got none", i, input)
		}
	}
}
