package meshxml

import (
	"errors"

	"ogre-meshxml/internal/geometry"
)

var (
	// ErrSceneHasNoMeshes is returned before any document work when the
	// scene has zero sub-meshes.
	ErrSceneHasNoMeshes = errors.New("the loaded model does not have any (sub)meshes")

	// ErrUnsupportedTopology is returned when any face is not a triangle.
	ErrUnsupportedTopology = geometry.ErrUnsupportedTopology

	// ErrDocumentIO marks failures reading, parsing or writing a document.
	ErrDocumentIO = errors.New("document i/o failed")

	// ErrNotAMeshDocument is returned when the root element is not "mesh".
	ErrNotAMeshDocument = errors.New("the xml file is not an Ogre mesh xml file")
)

// IOError carries the underlying read, parse or write failure verbatim.
// It matches both ErrDocumentIO and the wrapped error under errors.Is.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return "meshxml: " + e.Op + ": " + e.Err.Error()
	}
	return "meshxml: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() []error {
	return []error{ErrDocumentIO, e.Err}
}
