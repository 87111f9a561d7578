package strided

import (
	"errors"

	"github.com/born-ml/strided/internal/device"
)

// Sentinel errors for the copy primitive. Failures carry call context via
// wrapping, so match with errors.Is.
var (
	// ErrInvalidArgument reports a malformed call: rank zero, rank mismatch
	// among shape and stride descriptors, or a negative extent or stride.
	// Checked eagerly; nothing is written when it is returned.
	ErrInvalidArgument = errors.New("strided: invalid argument")

	// ErrOutOfBounds reports that a view's strides and shape reach past its
	// allocation. Checked eagerly; nothing is written when it is returned.
	ErrOutOfBounds = errors.New("strided: view exceeds memory bounds")

	// ErrDevice is the device-failure sentinel, re-exported from the device
	// package. A copy that fails mid-walk wraps it and leaves the destination
	// partially written.
	ErrDevice = device.ErrDevice
)
