package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ogre-meshxml/internal/scene"
)

// LoadOBJ reads a Wavefront OBJ file. Groups, objects and material
// switches start a new sub-mesh; map_Kd from a referenced mtllib becomes
// the sub-mesh texture.
func LoadOBJ(path string, opts Options) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open %s: %w", path, err)
	}
	defer f.Close()

	p := newOBJParser(opts)
	p.dir = filepath.Dir(path)
	if err := p.parse(f); err != nil {
		return nil, fmt.Errorf("importer: parse %s: %w", path, err)
	}
	return p.scene(), nil
}

// ReadOBJ parses OBJ data from r. mtllib statements are ignored.
func ReadOBJ(r io.Reader, opts Options) (*scene.Scene, error) {
	p := newOBJParser(opts)
	if err := p.parse(r); err != nil {
		return nil, fmt.Errorf("importer: parse obj: %w", err)
	}
	return p.scene(), nil
}

type objParser struct {
	opts Options
	dir  string

	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32
	textures  map[string]string // material -> map_Kd

	subs    []*scene.SubMesh
	cur     *scene.SubMesh
	verts   *vertexSet
	name    string
	texture string
}

func newOBJParser(opts Options) *objParser {
	return &objParser{opts: opts, textures: make(map[string]string)}
}

func (p *objParser) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)
		ident, val := fields[0], fields[1:]

		var err error
		switch ident {
		case "v", "vn":
			var v [3]float32
			if v, err = parseVec3(val); err == nil {
				if ident == "v" {
					p.positions = append(p.positions, v)
				} else {
					p.normals = append(p.normals, v)
				}
			}
		case "vt":
			var t [2]float32
			if t, err = parseVec2(val); err == nil {
				p.uvs = append(p.uvs, t)
			}
		case "f":
			err = p.face(val)
		case "o", "g":
			p.begin(strings.Join(val, " "), p.texture)
		case "usemtl":
			mtl := strings.Join(val, " ")
			p.begin(p.name, p.textures[mtl])
		case "mtllib":
			if p.dir != "" {
				for _, lib := range val {
					p.loadMTL(filepath.Join(p.dir, lib))
				}
			}
		default:
			// s, l, p and vendor extensions carry nothing we serialize
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return scanner.Err()
}

// begin closes the current sub-mesh if it has faces and starts a new one.
func (p *objParser) begin(name, texture string) {
	p.name, p.texture = name, texture
	if p.cur != nil && len(p.cur.Faces) == 0 {
		p.cur.Name, p.cur.Texture = name, texture
		return
	}
	p.cur = nil
}

func (p *objParser) face(val []string) error {
	if len(val) < 3 {
		return fmt.Errorf("face with %d corners", len(val))
	}
	if p.cur == nil {
		p.cur = &scene.SubMesh{Name: p.name, Texture: p.texture}
		p.verts = newVertexSet(p.cur)
		p.subs = append(p.subs, p.cur)
	}

	idx := make([]uint32, 0, len(val))
	for _, s := range val {
		c, err := p.corner(s)
		if err != nil {
			return err
		}
		idx = append(idx, p.verts.add(c, p.positions, p.normals, p.uvs))
	}
	addFace(p.cur, idx, p.opts)
	return nil
}

// corner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (p *objParser) corner(s string) (corner, error) {
	parts := strings.Split(s, "/")
	c := corner{pos: -1, norm: -1, uv: -1}

	var err error
	if c.pos, err = objIndex(parts[0], len(p.positions)); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.uv, err = objIndex(parts[1], len(p.uvs)); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.norm, err = objIndex(parts[2], len(p.normals)); err != nil {
			return c, err
		}
	}
	return c, nil
}

// objIndex converts a 1-based or negative relative OBJ index to 0-based.
func objIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("bad index %q", s)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return -1, fmt.Errorf("index 0 is invalid")
	}
	if i < 0 || i >= n {
		return -1, fmt.Errorf("index %s out of range (%d defined)", s, n)
	}
	return i, nil
}

func (p *objParser) loadMTL(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	mtl := ""
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			mtl = fields[1]
		case "map_Kd":
			// options such as -s precede the file name
			p.textures[mtl] = filepath.Join(p.dir, fields[len(fields)-1])
		}
	}
}

func (p *objParser) scene() *scene.Scene {
	s := &scene.Scene{SubMeshes: make([]scene.SubMesh, 0, len(p.subs))}
	for _, sub := range p.subs {
		s.SubMeshes = append(s.SubMeshes, *sub)
	}
	return s
}

func parseVec3(val []string) ([3]float32, error) {
	var v [3]float32
	if len(val) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(val))
	}
	for k := 0; k < 3; k++ {
		f, err := strconv.ParseFloat(val[k], 32)
		if err != nil {
			return v, err
		}
		v[k] = float32(f)
	}
	return v, nil
}

func parseVec2(val []string) ([2]float32, error) {
	var t [2]float32
	if len(val) < 1 {
		return t, fmt.Errorf("expected texture coordinate")
	}
	for k := 0; k < 2 && k < len(val); k++ {
		f, err := strconv.ParseFloat(val[k], 32)
		if err != nil {
			return t, err
		}
		t[k] = float32(f)
	}
	return t, nil
}
