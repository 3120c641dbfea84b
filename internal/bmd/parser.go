package bmd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"
)

// Version is the only BMD layout read by Parse: plain, unencrypted data.
// Versions 12 and 15 are encrypted with keys that are not distributed here.
const Version = 10

// Parse reads a BMD file.
func Parse(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bmd: read %s: %w", path, err)
	}
	m, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("bmd: %s: %w", path, err)
	}
	return m, nil
}

// Decode parses BMD bytes.
func Decode(raw []byte) (*Model, error) {
	if len(raw) < 4 || string(raw[:3]) != "BMD" {
		return nil, fmt.Errorf("invalid header")
	}
	if v := raw[3]; v != Version {
		return nil, fmt.Errorf("unsupported version %d (only unencrypted version %d)", v, Version)
	}

	r := &reader{data: raw[4:]}
	return r.parse()
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) readStr(n int) string {
	if r.off+n > len(r.data) {
		r.off = len(r.data)
		return ""
	}
	s := r.data[r.off : r.off+n]
	r.off += n
	// Find null terminator
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return string(s)
}

func (r *reader) readI16() int16 {
	return int16(r.readU16())
}

func (r *reader) readU16() uint16 {
	if r.off+2 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) readF32() float32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v
}

func (r *reader) readVec3() [3]float32 {
	return [3]float32{r.readF32(), r.readF32(), r.readF32()}
}

func (r *reader) readByte() byte {
	if r.off >= len(r.data) {
		return 0
	}
	b := r.data[r.off]
	r.off++
	return b
}

func (r *reader) skip(n int) {
	r.off = min(r.off+n, len(r.data))
}

func (r *reader) parse() (*Model, error) {
	name := r.readStr(32)
	meshCount := int(r.readU16())
	boneCount := int(r.readU16())
	actionCount := int(r.readU16())

	if meshCount > 100 {
		return nil, fmt.Errorf("invalid mesh count %d", meshCount)
	}

	meshes := make([]Mesh, 0, meshCount)
	for i := 0; i < meshCount; i++ {
		nv := int(r.readI16())
		nn := int(r.readI16())
		ntc := int(r.readI16())
		nt := int(r.readI16())
		_ = r.readI16() // texture index
		if nv < 0 || nn < 0 || ntc < 0 || nt < 0 {
			return nil, fmt.Errorf("mesh %d: negative element count", i)
		}

		// Vertices: 16 bytes each (node:i16, pad:i16, x:f32, y:f32, z:f32)
		verts := make([][3]float32, nv)
		nodes := make([]int16, nv)
		for j := 0; j < nv; j++ {
			nodes[j] = r.readI16()
			r.skip(2)
			verts[j] = r.readVec3()
		}

		// Normals: 20 bytes each (node:i16, pad:i16, nx:f32, ny:f32, nz:f32, bind:i16, pad:i16)
		normals := make([][3]float32, nn)
		normalNodes := make([]int16, nn)
		for j := 0; j < nn; j++ {
			normalNodes[j] = r.readI16()
			r.skip(2)
			normals[j] = r.readVec3()
			r.skip(4)
		}

		// TexCoords: 8 bytes each (u:f32, v:f32)
		uvs := make([][2]float32, ntc)
		for j := 0; j < ntc; j++ {
			uvs[j] = [2]float32{r.readF32(), r.readF32()}
		}

		// Triangles: 64 bytes each
		tris := make([]Triangle, 0, nt)
		for j := 0; j < nt; j++ {
			base := r.off
			if base+64 > len(r.data) {
				return nil, fmt.Errorf("mesh %d: truncated triangle %d", i, j)
			}
			t := Triangle{Polygon: int(r.data[base])}
			for k := 0; k < 4; k++ {
				t.VI[k] = int16(binary.LittleEndian.Uint16(r.data[base+2+k*2:]))
				t.NI[k] = int16(binary.LittleEndian.Uint16(r.data[base+10+k*2:]))
				t.TI[k] = int16(binary.LittleEndian.Uint16(r.data[base+18+k*2:]))
			}
			tris = append(tris, t)
			r.off += 64
		}

		texPath := strings.ReplaceAll(r.readStr(32), "\\", "/")

		meshes = append(meshes, Mesh{
			Verts:       verts,
			Nodes:       nodes,
			Normals:     normals,
			NormalNodes: normalNodes,
			UVs:         uvs,
			Tris:        tris,
			TexPath:     texPath,
		})
	}

	// Actions: key counts are needed to walk the bone records
	actionKeys := make([]int, actionCount)
	for a := 0; a < actionCount; a++ {
		numKeys := int(r.readI16())
		if lockPos := r.readByte() > 0; lockPos {
			r.skip(numKeys * 12)
		}
		actionKeys[a] = numKeys
	}

	bones := make([]Bone, 0, boneCount)
	for b := 0; b < boneCount; b++ {
		if isDummy := r.readByte() > 0; isDummy {
			bones = append(bones, Bone{Parent: -1, IsDummy: true})
			continue
		}

		bone := Bone{Name: r.readStr(32), Parent: int(r.readI16())}

		// Per action: numKeys positions then numKeys rotations, 12 bytes each
		for a, numKeys := range actionKeys {
			if a == 0 && numKeys > 0 {
				bone.BindPosition = r.readVec3()
				r.skip((numKeys - 1) * 12)
				bone.BindRotation = r.readVec3()
				r.skip((numKeys - 1) * 12)
				continue
			}
			r.skip(numKeys * 24)
		}

		bones = append(bones, bone)
	}

	return &Model{Name: name, Meshes: meshes, Bones: bones}, nil
}
