package daxpy

// worker applies the DAXPY update to the slice of the vectors it owns.
type worker struct {
	id   int
	span Range

	x      []float64
	y      []float64
	alpha  float64
	kernel Kernel
}

// newWorker binds a worker to r. The sub-slices are capacity-clipped so the
// worker cannot reach elements outside r.
func newWorker(id int, r Range, v *Vectors, kernel Kernel) *worker {
	return &worker{
		id:     id,
		span:   r,
		x:      v.X[r.Start:r.End:r.End],
		y:      v.Y[r.Start:r.End:r.End],
		alpha:  v.Alpha,
		kernel: kernel,
	}
}

// Run performs y[i] = alpha*x[i] + y[i] over the worker's range.
// An empty range is a no-op.
func (w *worker) Run() {
	if len(w.y) == 0 {
		return
	}

	w.kernel(w.y, w.alpha, w.x)
}
