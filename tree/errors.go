package tree

// UpdateError reports an invariant violation raised from within the
// update engine -- a caller bug or corrupt state, never an expected
// runtime condition, which is why UpdateDecisionTree panics with it
// instead of returning it.
type UpdateError string

func (e UpdateError) Error() string { return string(e) }

// ErrSampleInBothBatches is the panic value raised when a commit
// batch holds the same sample object in both its additions and removals.
const ErrSampleInBothBatches UpdateError = "sample present in both the add and remove batch"
