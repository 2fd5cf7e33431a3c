package entities

// Workspace is a request-scoped scratch directory holding one staged upload
type Workspace struct {
	ID         string
	Path       string
	StagedFile string // empty until the upload has been staged
}
