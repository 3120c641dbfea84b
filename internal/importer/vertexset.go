package importer

import "ogre-meshxml/internal/scene"

// corner identifies a face corner by its per-attribute indices. Formats
// like OBJ and BMD index positions, normals and uvs separately; a document
// vertex exists for every distinct combination.
type corner struct {
	pos, norm, uv int
}

// vertexSet builds the unified vertex list of one sub-mesh.
type vertexSet struct {
	sub   *scene.SubMesh
	index map[corner]uint32
}

func newVertexSet(sub *scene.SubMesh) *vertexSet {
	return &vertexSet{sub: sub, index: make(map[corner]uint32)}
}

// add returns the local index for c, creating the vertex on first use.
// Missing attributes are passed as -1.
func (vs *vertexSet) add(c corner, positions, normals [][3]float32, uvs [][2]float32) uint32 {
	if i, ok := vs.index[c]; ok {
		return i
	}
	v := scene.Vertex{Position: positions[c.pos], Source: c.pos}
	if c.norm >= 0 && c.norm < len(normals) {
		n := normals[c.norm]
		v.Normal = &n
	}
	if c.uv >= 0 && c.uv < len(uvs) {
		t := uvs[c.uv]
		v.TexCoord = &t
	}
	i := uint32(len(vs.sub.Vertices))
	vs.sub.Vertices = append(vs.sub.Vertices, v)
	vs.index[c] = i
	return i
}
