package scene

// Scene is the read-only model handed over by an importer.
// Skeleton and animation data are not carried.
type Scene struct {
	Name      string
	SubMeshes []SubMesh
}

// HasMeshes reports whether the scene holds at least one sub-mesh.
func (s *Scene) HasMeshes() bool {
	return s != nil && len(s.SubMeshes) > 0
}

// SubMesh is one independently rendered block of geometry.
type SubMesh struct {
	Name     string
	Texture  string // diffuse texture reference from the source file, if any
	Vertices []Vertex
	Faces    []Face
	Bones    []Bone
}

// Vertex holds per-vertex attributes. Optional channels are nil when absent.
type Vertex struct {
	Position [3]float32
	Normal   *[3]float32
	Tangent  *[3]float32
	TexCoord *[2]float32

	// Source is the vertex index used by the importer before it split
	// vertices on attribute seams. Bone weights refer to this index.
	Source int
}

// Face lists vertex indices. Only triangles can be serialized.
type Face struct {
	Indices []uint32
}

// Tri is shorthand for a triangular face.
func Tri(a, b, c uint32) Face {
	return Face{Indices: []uint32{a, b, c}}
}

// Bone is a skinning influence and the vertices it weighs.
type Bone struct {
	Name    string
	Weights []VertexWeight
}

// VertexWeight pairs a source vertex index with an influence weight.
type VertexWeight struct {
	Vertex int
	Weight float32
}
