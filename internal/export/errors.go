package export

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrExport wraps every failure that happens while producing an artifact.
	ErrExport = constError("export failed")

	// ErrUnsupportedFormat indicates an unknown export format name.
	ErrUnsupportedFormat = constError("unsupported export format")

	// ErrInvalidPayload indicates a payload that does not match the export kind.
	ErrInvalidPayload = constError("payload does not match export type")

	// ErrInvalidFileName indicates a file name that carries a directory part.
	ErrInvalidFileName = constError("file name must not contain a directory")
)
