// Package repl runs the interactive read-eval-print loop. A single evaluator
// lives for the whole session, so bindings and imports survive between lines.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/lmorg/readline"

	"madola/internal/evaluator"
	"madola/internal/lexer"
	"madola/internal/parser"
)

const PROMPT = ">> "

// Start reads and evaluates statements line by line until readline reports
// an interrupt or end of input. Interactive lines need no version
// declaration.
func Start(out io.Writer, rootPath string) {
	rline := readline.NewInstance()
	rline.SetPrompt(PROMPT)

	e := evaluator.New(rootPath)

	for {
		line, err := rline.Readline()
		if err != nil {
			fmt.Fprintln(out)
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		l := lexer.New(line)
		p := parser.New(l, line)
		program := p.ParseProgram()
		if len(p.Errors()) != 0 {
			printParserErrors(out, p.Errors())
			continue
		}

		res := e.EvaluateStatements(program.Statements)
		for _, o := range res.Outputs {
			fmt.Fprintln(out, o)
		}
		if !res.Success {
			fmt.Fprintln(out, res.Error)
		}
	}
}

func printParserErrors(out io.Writer, errors []string) {
	io.WriteString(out, "parser errors:\n")
	for _, msg := range errors {
		io.WriteString(out, "\t"+msg+"\n")
	}
}
