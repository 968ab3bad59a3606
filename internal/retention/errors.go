package retention

import "fmt"

// DeleteError reports a failed removal. The sweep stops at the first one,
// so entries after Name in the listing were not processed.
type DeleteError struct {
	Name string
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("deleting %s: %v", e.Path, e.Err)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}
