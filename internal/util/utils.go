package util

import (
	"fmt"
	"strings"
)

// GetLineAndColumn converts a byte position into 1-based line and column
// numbers.
func GetLineAndColumn(src string, pos int) (line int, column int) {
	line = 1
	column = 1
	for i, char := range src {
		if i == pos {
			break
		}
		if char == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return
}

// GetContextLines formats the error line with up to two lines of leading
// context and a caret under the error column:
//
//	      2 | y := x^2 + 3;
//	  >   3 | print(y;
//	                 ^ unexpected here
func GetContextLines(src string, errorLine, errorCol int) string {
	lines := strings.Split(src, "\n")
	if errorLine < 1 || errorLine > len(lines) {
		return ""
	}

	startLine := errorLine - 2
	if startLine < 1 {
		startLine = 1
	}

	var result strings.Builder
	for i := startLine; i <= errorLine; i++ {
		content := lines[i-1]
		if i != errorLine {
			fmt.Fprintf(&result, "     %3d | %s\n", i, content)
			continue
		}

		margin := fmt.Sprintf("  >  %3d | ", i)
		fmt.Fprintf(&result, "%s%s\n", margin, content)
		prefix := content
		if errorCol-1 <= len(content) {
			prefix = content[:errorCol-1]
		}
		result.WriteString(blankOut(margin+prefix) + "^ unexpected here")
	}
	return result.String()
}

// blankOut replaces every character with a space, keeping tabs so the caret
// stays aligned under tab-indented source.
func blankOut(s string) string {
	var buf strings.Builder
	for _, c := range s {
		if c == '\t' {
			buf.WriteRune('\t')
		} else {
			buf.WriteRune(' ')
		}
	}
	return buf.String()
}
