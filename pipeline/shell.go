package pipeline

import (
	"github.com/formlabs-oss/stepmesh/internal/obs"
	"github.com/formlabs-oss/stepmesh/mesh"
	"github.com/formlabs-oss/stepmesh/step"
)

// convertShell triangulates every face of one closed shell and
// combines the results into a single, colorless, untransformed mesh.
// A face that fails to convert (unsupported geometry, degenerate
// loop, or an unrecoverable CDT error) is skipped and counted in
// Stats.NumErrors rather than aborting the shell; a face whose
// conversion panics is recovered at this same boundary and counted in
// Stats.NumPanics.
func convertShell(f *step.File, shellID int, o options) (mesh.Mesh, mesh.Stats) {
	shell, ok := f.At(shellID).(*step.ClosedShell)
	if !ok {
		return mesh.Mesh{}, mesh.Stats{NumErrors: 1}
	}

	var out mesh.Mesh
	stats := mesh.Stats{NumShells: 1}
	for _, faceID := range shell.CfsFaces {
		stats.NumFaces++
		faceMesh, err := convertFaceRecovered(f, faceID, o, &stats)
		if err != nil {
			obs.Logger().Warn("skipping face", "face", faceID, "err", err)
			stats.NumErrors++
			continue
		}
		out = mesh.Combine(out, faceMesh)
	}
	return out, stats
}

// convertFaceRecovered wraps convertFace with a single named recover
// site: a panic inside the triangulator or surface lowering (e.g. an
// assertion on a malformed control net) is turned into an error and
// counted, instead of bringing down the whole conversion.
func convertFaceRecovered(f *step.File, faceID int, o options, stats *mesh.Stats) (m mesh.Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			stats.NumPanics++
			err = &FacePanicError{FaceID: faceID, Value: r}
		}
	}()
	return convertFace(f, faceID, o)
}
