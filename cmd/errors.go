package cmd

import "errors"

// ErrAlreadyHandled marks failures the view has already shown; main exits
// non-zero without printing them again.
var ErrAlreadyHandled = errors.New("already handled")
