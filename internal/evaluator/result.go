package evaluator

// Result is what one top-level evaluation produces: console outputs in
// execution order plus the side-channel artifacts renderers consume. A fresh
// Result is created per Evaluate call and owned by the caller.
type Result struct {
	Outputs  []string
	Graphs   []GraphDescriptor
	Graphs3D []Graph3D
	Tables   []Table
	Success  bool
	Error    string
}

// GraphDescriptor is one collected x/y series.
type GraphDescriptor struct {
	X     []float64
	Y     []float64
	Title string
}

// Graph3D is a titled set of numeric dimension series for 3-D rendering.
type Graph3D struct {
	Title string
	Dims  [][]float64
}

// Table is named columns of numeric or text cells.
type Table struct {
	Headers []string
	Columns []Column
}

// Column holds either a numeric series or a single text cell.
type Column struct {
	Numbers []float64
	Text    string
	IsText  bool
}
