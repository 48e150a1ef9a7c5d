package native

import (
	"math"

	"madola/internal/value"
)

func statsModule() *Module {
	return &Module{
		Name: "stats",
		fns: map[string]Fn{
			"mean":  statsMean,
			"stdev": statsStdev,
			"min":   statsMin,
			"max":   statsMax,
			"sum":   statsSum,
		},
	}
}

func statsArray(name string, args []value.Value) (*value.Array, error) {
	if len(args) != 1 {
		return nil, value.Errorf(value.ErrArity, "%s expects 1 argument, got %d", name, len(args))
	}
	arr, ok := args[0].(*value.Array)
	if !ok {
		return nil, value.Errorf(value.ErrType, "%s expects an array, got %s", name, args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return nil, value.Errorf(value.ErrShape, "%s of an empty array", name)
	}
	return arr, nil
}

func statsSum(args []value.Value) (value.Value, error) {
	arr, err := statsArray("stats.sum", args)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, f := range arr.Elements {
		total += f
	}
	return &value.Number{Value: total}, nil
}

func statsMean(args []value.Value) (value.Value, error) {
	arr, err := statsArray("stats.mean", args)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, f := range arr.Elements {
		total += f
	}
	return &value.Number{Value: total / float64(len(arr.Elements))}, nil
}

// statsStdev is the population standard deviation.
func statsStdev(args []value.Value) (value.Value, error) {
	arr, err := statsArray("stats.stdev", args)
	if err != nil {
		return nil, err
	}
	mean := 0.0
	for _, f := range arr.Elements {
		mean += f
	}
	mean /= float64(len(arr.Elements))

	variance := 0.0
	for _, f := range arr.Elements {
		d := f - mean
		variance += d * d
	}
	variance /= float64(len(arr.Elements))
	return &value.Number{Value: math.Sqrt(variance)}, nil
}

func statsMin(args []value.Value) (value.Value, error) {
	arr, err := statsArray("stats.min", args)
	if err != nil {
		return nil, err
	}
	acc := arr.Elements[0]
	for _, f := range arr.Elements[1:] {
		acc = math.Min(acc, f)
	}
	return &value.Number{Value: acc}, nil
}

func statsMax(args []value.Value) (value.Value, error) {
	arr, err := statsArray("stats.max", args)
	if err != nil {
		return nil, err
	}
	acc := arr.Elements[0]
	for _, f := range arr.Elements[1:] {
		acc = math.Max(acc, f)
	}
	return &value.Number{Value: acc}, nil
}
