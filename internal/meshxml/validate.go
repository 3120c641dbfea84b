package meshxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Validate parses a whole document and checks that its root element is
// "mesh". Nothing beyond the root tag is checked.
func Validate(r io.Reader) error {
	return validate(r, "")
}

// ValidateFile runs Validate on the file at path.
func ValidateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()
	return validate(f, path)
}

func validate(r io.Reader, path string) error {
	root, err := rootTag(r)
	if err != nil {
		return &IOError{Op: "parse", Path: path, Err: err}
	}
	slog.Debug("meshxml: validated root", "path", path, "root", root)
	if root != TagMesh {
		return fmt.Errorf("meshxml: root element %q: %w", root, ErrNotAMeshDocument)
	}
	return nil
}

// rootTag reads every token so malformed markup anywhere is reported, and
// returns the name of the first element.
func rootTag(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	root := ""
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok && root == "" {
			root = se.Name.Local
		}
	}
	if root == "" {
		return "", errors.New("no root element")
	}
	return root, nil
}
