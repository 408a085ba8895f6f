// Package security provides helpers for handling secret material and untrusted input.
package security

// Wipe is a convenience method to zero and nil out a slice.
// This should be called via defer to ensure cleanup.
func Wipe(data *[]byte) {
	if data == nil || *data == nil {
		return
	}
	for i := range *data {
		(*data)[i] = 0
	}
	*data = nil
}
