package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"madola/internal/ast"
)

// WalkAST recursively traverses an AST and serializes it into a map structure
// for JSON output.
func WalkAST(node ast.Node) interface{} {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return nil
	}

	switch n := node.(type) {
	case *ast.Program:
		statements := make([]interface{}, len(n.Statements))
		for i, s := range n.Statements {
			statements[i] = WalkAST(s)
		}
		return map[string]interface{}{
			"type":       "Program",
			"statements": statements,
		}

	case *ast.VersionStatement:
		return map[string]interface{}{
			"type":     "VersionStatement",
			"position": n.Token.Position,
			"version":  n.Version,
		}

	case *ast.AssignmentStatement:
		return map[string]interface{}{
			"type":     "AssignmentStatement",
			"position": n.Token.Position,
			"name":     n.Name.Value,
			"value":    WalkAST(n.Value),
		}

	case *ast.ArrayAssignmentStatement:
		return map[string]interface{}{
			"type":     "ArrayAssignmentStatement",
			"position": n.Token.Position,
			"name":     n.Name.Value,
			"index":    WalkAST(n.Index),
			"value":    WalkAST(n.Value),
		}

	case *ast.PrintStatement:
		return map[string]interface{}{
			"type":     "PrintStatement",
			"position": n.Token.Position,
			"value":    WalkAST(n.Value),
		}

	case *ast.ExpressionStatement:
		return map[string]interface{}{
			"type":       "ExpressionStatement",
			"position":   n.Token.Position,
			"expression": WalkAST(n.Expression),
		}

	case *ast.FunctionDeclaration:
		parameters := make([]interface{}, len(n.Parameters))
		for i, p := range n.Parameters {
			parameters[i] = p.Value
		}
		return map[string]interface{}{
			"type":       "FunctionDeclaration",
			"position":   n.Token.Position,
			"name":       n.Name.Value,
			"parameters": parameters,
			"body":       WalkAST(n.Body),
		}

	case *ast.PiecewiseFunctionDeclaration:
		parameters := make([]interface{}, len(n.Parameters))
		for i, p := range n.Parameters {
			parameters[i] = p.Value
		}
		cases := make([]interface{}, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = map[string]interface{}{
				"condition": WalkAST(c.Condition),
				"result":    WalkAST(c.Result),
			}
		}
		return map[string]interface{}{
			"type":       "PiecewiseFunctionDeclaration",
			"position":   n.Token.Position,
			"name":       n.Name.Value,
			"parameters": parameters,
			"cases":      cases,
		}

	case *ast.ReturnStatement:
		return map[string]interface{}{
			"type":        "ReturnStatement",
			"position":    n.Token.Position,
			"returnValue": WalkAST(n.ReturnValue),
		}

	case *ast.BreakStatement:
		return map[string]interface{}{
			"type":     "BreakStatement",
			"position": n.Token.Position,
		}

	case *ast.ForStatement:
		return map[string]interface{}{
			"type":     "ForStatement",
			"position": n.Token.Position,
			"var":      n.Var.Value,
			"from":     WalkAST(n.From),
			"to":       WalkAST(n.To),
			"body":     WalkAST(n.Body),
		}

	case *ast.WhileStatement:
		return map[string]interface{}{
			"type":      "WhileStatement",
			"position":  n.Token.Position,
			"condition": WalkAST(n.Condition),
			"body":      WalkAST(n.Body),
		}

	case *ast.IfStatement:
		return map[string]interface{}{
			"type":        "IfStatement",
			"position":    n.Token.Position,
			"condition":   WalkAST(n.Condition),
			"consequence": WalkAST(n.Consequence),
			"alternative": WalkAST(n.Alternative),
		}

	case *ast.ImportStatement:
		m := map[string]interface{}{
			"type":     "ImportStatement",
			"position": n.Token.Position,
			"module":   n.Module.Value,
		}
		if n.Alias != nil {
			m["alias"] = n.Alias.Value
		}
		return m

	case *ast.CommentStatement:
		return map[string]interface{}{
			"type":     "CommentStatement",
			"position": n.Token.Position,
			"text":     n.Text,
		}

	case *ast.SkipStatement:
		return map[string]interface{}{
			"type":     "SkipStatement",
			"position": n.Token.Position,
		}

	case *ast.HeadingStatement:
		return map[string]interface{}{
			"type":     "HeadingStatement",
			"position": n.Token.Position,
			"level":    n.Level,
			"text":     n.Text,
		}

	case *ast.ParagraphStatement:
		return map[string]interface{}{
			"type":     "ParagraphStatement",
			"position": n.Token.Position,
			"text":     n.Text,
		}

	case *ast.DecoratedStatement:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = WalkAST(a)
		}
		return map[string]interface{}{
			"type":      "DecoratedStatement",
			"position":  n.Token.Position,
			"name":      n.Name,
			"args":      args,
			"statement": WalkAST(n.Statement),
		}

	case *ast.BlockStatement:
		statements := make([]interface{}, len(n.Statements))
		for i, s := range n.Statements {
			statements[i] = WalkAST(s)
		}
		return map[string]interface{}{
			"type":       "BlockStatement",
			"position":   n.Token.Position,
			"statements": statements,
		}

	case *ast.Identifier:
		return map[string]interface{}{
			"type":     "Identifier",
			"position": n.Token.Position,
			"value":    n.Value,
		}

	case *ast.NumberLiteral:
		return map[string]interface{}{
			"type":     "NumberLiteral",
			"position": n.Token.Position,
			"value":    n.Value,
		}

	case *ast.StringLiteral:
		return map[string]interface{}{
			"type":     "StringLiteral",
			"position": n.Token.Position,
			"value":    n.Value,
		}

	case *ast.ImaginaryLiteral:
		return map[string]interface{}{
			"type":     "ImaginaryLiteral",
			"position": n.Token.Position,
			"value":    n.Value,
		}

	case *ast.UnitLiteral:
		return map[string]interface{}{
			"type":     "UnitLiteral",
			"position": n.Token.Position,
			"value":    n.Value,
			"unit":     n.Unit,
		}

	case *ast.PrefixExpression:
		return map[string]interface{}{
			"type":     "PrefixExpression",
			"position": n.Token.Position,
			"operator": n.Operator,
			"right":    WalkAST(n.Right),
		}

	case *ast.InfixExpression:
		return map[string]interface{}{
			"type":     "InfixExpression",
			"position": n.Token.Position,
			"left":     WalkAST(n.Left),
			"operator": n.Operator,
			"right":    WalkAST(n.Right),
		}

	case *ast.ArrayLiteral:
		rows := make([]interface{}, len(n.Rows))
		for i, row := range n.Rows {
			elements := make([]interface{}, len(row))
			for j, el := range row {
				elements[j] = WalkAST(el)
			}
			rows[i] = elements
		}
		return map[string]interface{}{
			"type":     "ArrayLiteral",
			"position": n.Token.Position,
			"rows":     rows,
		}

	case *ast.IndexExpression:
		return map[string]interface{}{
			"type":     "IndexExpression",
			"position": n.Token.Position,
			"left":     WalkAST(n.Left),
			"index":    WalkAST(n.Index),
		}

	case *ast.CallExpression:
		args := make([]interface{}, len(n.Arguments))
		for i, arg := range n.Arguments {
			args[i] = WalkAST(arg)
		}
		return map[string]interface{}{
			"type":      "CallExpression",
			"position":  n.Token.Position,
			"function":  n.Function.Value,
			"arguments": args,
		}

	case *ast.MethodCallExpression:
		args := make([]interface{}, len(n.Arguments))
		for i, arg := range n.Arguments {
			args[i] = WalkAST(arg)
		}
		return map[string]interface{}{
			"type":      "MethodCallExpression",
			"position":  n.Token.Position,
			"receiver":  WalkAST(n.Receiver),
			"method":    n.Method,
			"arguments": args,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown: " + n.String(),
		}
	}
}

// WriteASTToJSON takes a root AST node and writes it to a JSON file.
func WriteASTToJSON(node ast.Node, filename string) error {
	astMap := WalkAST(node)

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")  // Pretty-print the JSON
	encoder.SetEscapeHTML(false) // Disable escaping of characters like <, >, &

	if err := encoder.Encode(astMap); err != nil {
		return fmt.Errorf("failed to write JSON: %v", err)
	}
	return nil
}
