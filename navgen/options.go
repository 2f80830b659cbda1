// Package navgen turns triangle-soup geometry into queryable navmesh.NavMesh
// tiles by driving the navbuild pipeline end to end: heightfield
// rasterisation, span filtering, compact heightfield, area marking,
// erosion, distance field, region partitioning, contour tracing, polygon
// mesh and detail mesh construction, and finally tile assembly into a
// runtime NavMesh.
package navgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Options collects every build knob recognised by the generator. Voxel
// quantities are expressed in cells; everything else in world units.
type Options struct {
	CellSize   float32 `yaml:"cell_size"`
	CellHeight float32 `yaml:"cell_height"`

	WalkableRadiusVoxels      int32   `yaml:"walkable_radius_voxels"`
	WalkableClimbVoxels       int32   `yaml:"walkable_climb_voxels"`
	WalkableHeightVoxels      int32   `yaml:"walkable_height_voxels"`
	WalkableSlopeAngleDegrees float32 `yaml:"walkable_slope_angle_degrees"`

	BorderSize      int32 `yaml:"border_size"`
	MinRegionArea   int32 `yaml:"min_region_area"`
	MergeRegionArea int32 `yaml:"merge_region_area"`

	// PartitionType selects the region-partitioning algorithm: watershed
	// (PartitionWatershed, the default) produces the tightest-fitting
	// regions but costs the most to compute; monotone (PartitionMonotone)
	// is cheaper and deterministic but can over-split regions along long
	// corridors.
	PartitionType PartitionType `yaml:"partition_type"`

	MaxSimplificationError float32 `yaml:"max_simplification_error"`
	MaxEdgeLength          int32   `yaml:"max_edge_length"`
	MaxVerticesPerPoly     int32   `yaml:"max_vertices_per_poly"`

	DetailSampleDistance float32 `yaml:"detail_sample_distance"`
	DetailSampleMaxError float32 `yaml:"detail_sample_max_error"`

	// Tiled builds only.
	TileSizeVoxels int32   `yaml:"tile_size_voxels"`
	TileSizeWorld  float32 `yaml:"tile_size_world"`
}

// DefaultOptions returns defaults modelled on the original recast demo
// apps' settings: a 0.3/0.2 voxel grid (cell size / cell height) with a
// 2-voxel (0.6 world-unit) agent radius. The sample scenarios start from
// these and override the grid and agent sizes.
func DefaultOptions() Options {
	return Options{
		CellSize:                  0.3,
		CellHeight:                0.2,
		WalkableRadiusVoxels:       2,
		WalkableClimbVoxels:        2,
		WalkableHeightVoxels:       10,
		WalkableSlopeAngleDegrees:  45,
		BorderSize:                 0,
		MinRegionArea:              8,
		MergeRegionArea:            20,
		PartitionType:              PartitionWatershed,
		MaxSimplificationError:     1.3,
		MaxEdgeLength:              12,
		MaxVerticesPerPoly:         6,
		DetailSampleDistance:       6,
		DetailSampleMaxError:       1,
		TileSizeVoxels:             0,
		TileSizeWorld:              0,
	}
}

// LoadOptions reads build options from a YAML file, starting from
// DefaultOptions so an on-disk file may specify only the fields it wants to
// override.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("navgen: couldn't read options %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("navgen: couldn't parse options %q: %w", path, err)
	}
	return opts, nil
}

// SaveOptions writes opts to path as YAML.
func SaveOptions(path string, opts Options) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("navgen: couldn't marshal options: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (o Options) tileSizeIsSet() bool { return o.TileSizeVoxels > 0 }

// PartitionType names a navbuild region-partitioning algorithm.
type PartitionType uint8

const (
	// PartitionWatershed builds regions with navbuild.BuildRegions.
	PartitionWatershed PartitionType = iota
	// PartitionMonotone builds regions with navbuild.BuildRegionsMonotone.
	PartitionMonotone
)
