package tess

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrPipelineUnavailable = Error("pipeline unavailable")
	ErrUnknownKey          = Error("unknown pipeline key")
	ErrAlreadyLoaded       = Error("pipeline set already loaded")
)

// LoadError describes why one catalog slot failed to load. Stage and Path
// are empty when the failure happened at link time.
type LoadError struct {
	Key   PipelineKey
	Stage Stage
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return "failed to load shader " + e.Key.String() + ": " + e.Err.Error()
	}
	return "failed to load shader " + e.Key.String() + " (" + e.Stage.String() + " " + e.Path + "): " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
