package bmd

// Triangle holds polygon type and index tuples into vertex/normal/texcoord arrays.
// Polygon == 4 means quad (two triangles: 0-1-2 and 0-2-3).
type Triangle struct {
	Polygon int
	VI      [4]int16
	NI      [4]int16
	TI      [4]int16
}

// Mesh holds parsed geometry for one sub-mesh within a BMD file.
type Mesh struct {
	Verts       [][3]float32
	Nodes       []int16 // bone index per vertex
	Normals     [][3]float32
	NormalNodes []int16 // bone index per normal
	UVs         [][2]float32
	Tris        []Triangle
	TexPath     string // texture reference from BMD (e.g. "sword04.jpg")
}

// Bone is one entry of the skeleton table. Dummy bones hold no data but
// keep their slot so vertex node indices stay valid.
//
// The bind pose is the first key of the first action, relative to Parent.
// Vertices bound to the bone are stored in its local space.
type Bone struct {
	Name         string
	Parent       int
	IsDummy      bool
	BindPosition [3]float32
	BindRotation [3]float32 // Euler XYZ, radians
}

// Model is a parsed BMD file.
type Model struct {
	Name   string
	Meshes []Mesh
	Bones  []Bone
}
