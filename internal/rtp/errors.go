package rtp

import "errors"

// ErrCheckReadFailed is returned (wrapped) by CheckCodeword when a symbol
// read needed to verify the codeword fails, as distinct from the codeword
// simply being inconsistent.
var ErrCheckReadFailed = errors.New("rtp: check-read failed while verifying codeword")
