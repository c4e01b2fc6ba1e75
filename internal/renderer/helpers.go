package renderer

// Unwind collects release functions while a multi-step acquisition is in
// progress. On failure Unwind runs them in reverse order; on success Discard
// hands ownership to the caller.
type Unwind []func()

func (u *Unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

func (u *Unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = (*u)[:0]
}

func (u *Unwind) Discard() {
	*u = (*u)[:0]
}
