package meshxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const indent = "    "

// Document is a fully built mesh tree. It is never mutated after Build.
type Document struct {
	root *Node
}

// Root returns the "mesh" element.
func (d *Document) Root() *Node { return d.root }

// Encode writes the document as indented UTF-8 XML.
func (d *Document) Encode(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", indent)
	if err := encodeNode(enc, d.root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeNode(enc *xml.Encoder, n *Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	if len(n.Attrs) > 0 {
		start.Attr = make([]xml.Attr, len(n.Attrs))
		for i, a := range n.Attrs {
			start.Attr[i] = xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value}
		}
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Bytes returns the encoded document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, &IOError{Op: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

// WriteFile persists the document in one step: it is encoded in memory,
// written to a temporary file next to path and renamed into place.
func (d *Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "write", Path: path, Err: err}
	}

	slog.Info("meshxml: wrote document", "path", path, "bytes", len(data))
	return nil
}
