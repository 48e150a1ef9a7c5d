// Package linalg bridges interpreter matrices onto gonum dense matrices for
// the decomposition-backed operations: determinant, inverse, trace and
// eigendecomposition.
package linalg

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmpty     = errors.New("matrix is empty")
	ErrNotSquare = errors.New("matrix is not square")
	ErrSingular  = errors.New("matrix is singular")
	// ErrComplexEigen reports an eigendecomposition whose values or vectors
	// carry an imaginary component; results are never silently truncated to
	// their real parts.
	ErrComplexEigen = errors.New("eigendecomposition produced complex results")
	ErrFactorize    = errors.New("eigendecomposition failed to converge")
)

// singularTol is the determinant magnitude below which a matrix is treated
// as singular for inversion.
const singularTol = 1e-10

func dense(rows [][]float64) (*mat.Dense, error) {
	r := len(rows)
	if r == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	c := len(rows[0])
	data := make([]float64, 0, r*c)
	for _, row := range rows {
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data), nil
}

func square(rows [][]float64) (*mat.Dense, error) {
	d, err := dense(rows)
	if err != nil {
		return nil, err
	}
	r, c := d.Dims()
	if r != c {
		return nil, ErrNotSquare
	}
	return d, nil
}

// Det returns the determinant of a square matrix.
func Det(rows [][]float64) (float64, error) {
	d, err := square(rows)
	if err != nil {
		return 0, err
	}
	return mat.Det(d), nil
}

// Inverse returns the inverse of a square matrix, failing when the
// determinant magnitude falls below the singularity tolerance.
func Inverse(rows [][]float64) ([][]float64, error) {
	d, err := square(rows)
	if err != nil {
		return nil, err
	}
	det := mat.Det(d)
	if det < singularTol && det > -singularTol {
		return nil, ErrSingular
	}

	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return nil, ErrSingular
	}
	return toRows(&inv), nil
}

// Trace returns the sum of the main diagonal of a square matrix.
func Trace(rows [][]float64) (float64, error) {
	d, err := square(rows)
	if err != nil {
		return 0, err
	}
	return mat.Trace(d), nil
}

// Transpose flips rows and columns; it accepts any rectangular matrix.
func Transpose(rows [][]float64) [][]float64 {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return [][]float64{}
	}
	r, c := len(rows), len(rows[0])
	out := make([][]float64, c)
	for i := 0; i < c; i++ {
		out[i] = make([]float64, r)
		for j := 0; j < r; j++ {
			out[i][j] = rows[j][i]
		}
	}
	return out
}

// Eigenvalues returns the eigenvalues of a square matrix. Complex
// eigenvalues are an error.
func Eigenvalues(rows [][]float64) ([]float64, error) {
	eig, err := factorize(rows)
	if err != nil {
		return nil, err
	}

	values := eig.Values(nil)
	out := make([]float64, len(values))
	for i, v := range values {
		if imag(v) != 0 {
			return nil, ErrComplexEigen
		}
		out[i] = real(v)
	}
	return out, nil
}

// Eigenvectors returns the right eigenvectors of a square matrix as the
// columns of the result. Complex eigenvectors are an error.
func Eigenvectors(rows [][]float64) ([][]float64, error) {
	eig, err := factorize(rows)
	if err != nil {
		return nil, err
	}

	n := len(rows)
	vectors := mat.NewCDense(n, n, nil)
	eig.VectorsTo(vectors)

	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			v := vectors.At(i, j)
			if imag(v) != 0 {
				return nil, ErrComplexEigen
			}
			out[i][j] = real(v)
		}
	}
	return out, nil
}

func factorize(rows [][]float64) (*mat.Eigen, error) {
	d, err := square(rows)
	if err != nil {
		return nil, err
	}
	var eig mat.Eigen
	if ok := eig.Factorize(d, mat.EigenRight); !ok {
		return nil, ErrFactorize
	}
	return &eig, nil
}

func toRows(d *mat.Dense) [][]float64 {
	r, c := d.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			out[i][j] = d.At(i, j)
		}
	}
	return out
}
