package render

import (
	"sync"

	"github.com/latticecad/latticecad/sdf"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// collectVertices drains a stream of triangles into a flat, non-indexed
// vertex buffer: every three consecutive vertices correspond to a
// triangle. ToMeshVertices uses this instead of ExportMesh3MF's
// deduplicated index buffer when a caller only wants raw surface points.
//
// Pass slice by pointer. Because the function adds new elements to the
// slice, that requires changing the slice header, which the caller will
// not see.
func collectVertices(wg *sync.WaitGroup, vertices *[]v3.Vec) chan<- []*Triangle3 {
	// External code writes triangles to this channel.
	// This goroutine reads the channel and writes vertices to vertices.
	writer := make(chan []*Triangle3)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for ts := range writer {
			for _, t := range ts {
				*vertices = append(*vertices, t.V[0], t.V[1], t.V[2])
			}
		}
	}()

	return writer
}

// ToMeshVertices runs uniform marching cubes over s and returns the
// marched surface as a flat, non-indexed vertex buffer rather than a
// Triangle3 list. This is the marched-surface counterpart to
// sdf.SamplePointCloud3D's grid-and-refine sampling: it returns the
// vertices of the marched triangles, three per triangle, useful for a
// lightweight surface preview that doesn't need triangle topology.
func ToMeshVertices(s sdf.SDF3, meshCells int) []v3.Vec {
	r := NewMarchingCubesUniform(meshCells)

	var wg sync.WaitGroup
	var vertices []v3.Vec
	writer := collectVertices(&wg, &vertices)

	rendered := make(chan []*Triangle3)
	go func() {
		r.Render(s, rendered)
		close(rendered)
	}()
	go func() {
		for ts := range rendered {
			writer <- ts
		}
		close(writer)
	}()

	wg.Wait()
	return vertices
}
