// Package pipeline drives the face triangulation and assembly walk:
// it lowers every advanced face of a manifold solid brep's shells to
// 2D, triangulates each with the CDT, re-orients the result to match
// the surface's outward normal, then replicates and colors each shell
// under every assembly placement that instantiates it.
package pipeline

import (
	"context"

	"github.com/formlabs-oss/stepmesh/geom"
	"github.com/formlabs-oss/stepmesh/internal/parallel"
	"github.com/formlabs-oss/stepmesh/mesh"
	"github.com/formlabs-oss/stepmesh/step"
)

// Convert triangulates one manifold solid brep's outer shell,
// returning an untransformed, colorless mesh fragment and its
// conversion statistics.
func Convert(file *step.File, brepID int, opts ...Option) (mesh.Mesh, mesh.Stats) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return convertBrep(file, brepID, o)
}

func convertBrep(file *step.File, brepID int, o options) (mesh.Mesh, mesh.Stats) {
	brep, ok := file.At(brepID).(*step.ManifoldSolidBrep)
	if !ok {
		return mesh.Mesh{}, mesh.Stats{NumErrors: 1}
	}
	return convertShell(file, brep.Outer, o)
}

// shellJob is one manifold solid brep's discovered instancing: its id,
// the resolved world-space placements it appears under, and its
// resolved fill color.
type shellJob struct {
	brepID     int
	transforms []geom.Mat4
	color      geom.Point3
}

// ConvertAll discovers every manifold solid brep in file, triangulates
// each shell once, then replicates it under every assembly placement
// that instances it, combining everything into one mesh. Shell
// conversion is fanned out across a worker pool sized by WithWorkers;
// ctx is checked between shells so a caller can cancel a long run.
func ConvertAll(ctx context.Context, file *step.File, opts ...Option) (mesh.Mesh, mesh.Stats, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	jobs := discoverShellJobs(file)

	results := make([]mesh.Mesh, len(jobs))
	statsPerJob := make([]mesh.Stats, len(jobs))
	cancelled := false

	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()

	work := make([]func(), len(jobs))
	for i, job := range jobs {
		i, job := i, job
		work[i] = func() {
			if ctx.Err() != nil {
				cancelled = true
				return
			}
			base, stats := convertBrep(file, job.brepID, o)
			var m mesh.Mesh
			for _, t := range job.transforms {
				m = mesh.Combine(m, applyTransform(base, t, job.color))
			}
			results[i] = m
			statsPerJob[i] = stats
		}
	}
	pool.ExecuteAll(work)

	if cancelled || ctx.Err() != nil {
		return mesh.Mesh{}, mesh.Stats{}, ctx.Err()
	}

	var out mesh.Mesh
	var stats mesh.Stats
	for i := range results {
		out = mesh.Combine(out, results[i])
		stats = mesh.CombineStats(stats, statsPerJob[i])
	}
	return out, stats, nil
}

// discoverShellJobs finds every manifold solid brep in file and
// resolves, for each, the set of world-space placements it is
// instanced under (via the assembly transform tree) and its fill
// color (via the presentation-style chain).
func discoverShellJobs(file *step.File) []shellJob {
	relsByRep1 := relationshipsByRep1(file)
	repOf := shapeRepresentationOf(file)

	var jobs []shellJob
	for id, ent := range file.Entities {
		if _, ok := ent.(*step.ManifoldSolidBrep); !ok {
			continue
		}
		var transforms []geom.Mat4
		if repID, ok := repOf[id]; ok {
			transforms = resolveTransforms(file, relsByRep1, repID)
		} else {
			transforms = []geom.Mat4{geom.Identity4()}
		}
		jobs = append(jobs, shellJob{
			brepID:     id,
			transforms: transforms,
			color:      resolveColor(file, id),
		})
	}
	return jobs
}

// applyTransform clones m, mapping every vertex position through t and
// every normal through t's linear part, and stamping color onto every
// vertex.
func applyTransform(m mesh.Mesh, t geom.Mat4, color geom.Point3) mesh.Mesh {
	out := mesh.Mesh{
		Verts:     make([]mesh.Vertex, len(m.Verts)),
		Triangles: append([]mesh.Triangle{}, m.Triangles...),
	}
	for i, v := range m.Verts {
		out.Verts[i] = mesh.Vertex{
			Pos:   t.Apply(v.Pos),
			Norm:  t.ApplyVector(v.Norm).Normalize(),
			Color: color,
		}
	}
	return out
}
