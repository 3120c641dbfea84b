package bmd

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Encode serializes m in the unencrypted version 10 layout. Bind poses are
// written as a single action with one key.
func Encode(m *Model) []byte {
	var w bytes.Buffer
	w.WriteString("BMD")
	w.WriteByte(Version)
	writeStr(&w, m.Name, 32)
	writeU16(&w, uint16(len(m.Meshes)))
	writeU16(&w, uint16(len(m.Bones)))
	writeU16(&w, 1) // actions

	for _, mesh := range m.Meshes {
		writeU16(&w, uint16(len(mesh.Verts)))
		writeU16(&w, uint16(len(mesh.Normals)))
		writeU16(&w, uint16(len(mesh.UVs)))
		writeU16(&w, uint16(len(mesh.Tris)))
		writeU16(&w, 0) // texture index

		for j, v := range mesh.Verts {
			var node int16
			if j < len(mesh.Nodes) {
				node = mesh.Nodes[j]
			}
			writeU16(&w, uint16(node))
			writeU16(&w, 0)
			writeF32s(&w, v[:]...)
		}
		for j, n := range mesh.Normals {
			var node int16
			if j < len(mesh.NormalNodes) {
				node = mesh.NormalNodes[j]
			}
			writeU16(&w, uint16(node))
			writeU16(&w, 0)
			writeF32s(&w, n[:]...)
			writeU16(&w, 0)
			writeU16(&w, 0)
		}
		for _, uv := range mesh.UVs {
			writeF32s(&w, uv[:]...)
		}
		for _, t := range mesh.Tris {
			var rec [64]byte
			rec[0] = byte(t.Polygon)
			for k := 0; k < 4; k++ {
				binary.LittleEndian.PutUint16(rec[2+k*2:], uint16(t.VI[k]))
				binary.LittleEndian.PutUint16(rec[10+k*2:], uint16(t.NI[k]))
				binary.LittleEndian.PutUint16(rec[18+k*2:], uint16(t.TI[k]))
			}
			w.Write(rec[:])
		}
		writeStr(&w, mesh.TexPath, 32)
	}

	writeU16(&w, 1) // keys in action 0
	w.WriteByte(0)  // no locked positions

	for _, b := range m.Bones {
		if b.IsDummy {
			w.WriteByte(1)
			continue
		}
		w.WriteByte(0)
		writeStr(&w, b.Name, 32)
		writeU16(&w, uint16(int16(b.Parent)))
		writeF32s(&w, b.BindPosition[:]...)
		writeF32s(&w, b.BindRotation[:]...)
	}
	return w.Bytes()
}

func writeStr(w *bytes.Buffer, s string, n int) {
	buf := make([]byte, n)
	copy(buf, s)
	w.Write(buf)
}

func writeU16(w *bytes.Buffer, v uint16) {
	binary.Write(w, binary.LittleEndian, v)
}

func writeF32s(w *bytes.Buffer, vs ...float32) {
	for _, v := range vs {
		binary.Write(w, binary.LittleEndian, math.Float32bits(v))
	}
}
