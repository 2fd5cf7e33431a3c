// Package entities defines core domain models and data structures.
package entities

// UploadedPackage is the raw upload as received from a caller.
// It only lives for the duration of one scan.
type UploadedPackage struct {
	Filename  string
	MediaType string
	Data      []byte
}

// Size returns the payload length in bytes
func (p *UploadedPackage) Size() int {
	if p == nil {
		return 0
	}
	return len(p.Data)
}
