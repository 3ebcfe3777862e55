package retry

import (
	datatables_errors "github.com/block/datatables-go/errors"
)

// DualPath runs primary through r and, only when its final outcome is an
// HTTP 404, runs fallback through r instead. Any other failure of primary is
// returned without touching fallback.
//
// The Data Tables API serves some operations from both a current and a
// legacy path; callers do not need to know which one is live.
func DualPath(r Retry, fnName string, primary RetriableFn, fallback RetriableFn) error {
	err := r.Do(fnName, primary)
	if err == nil || !datatables_errors.IsNotFound(err) {
		return err
	}
	return r.Do(fnName+".fallback", fallback)
}
