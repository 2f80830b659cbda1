// Package navbuild turns a triangle soup into the mesh data consumed by
// package navmesh.
//
// The pipeline runs in stages, each consuming the previous stage's output:
//
//  - Rasterize the input triangles into a Heightfield.
//  - Filter and compact it into a CompactHeightfield.
//  - Compute a DistanceField and partition it into Regions.
//  - Trace region boundaries into a ContourSet.
//  - Simplify contours into a PolyMesh.
//  - Sample detail heights into a PolyMeshDetail.
//
// A BuildContext threads through every stage to collect log messages and
// per-phase timings.
package navbuild
