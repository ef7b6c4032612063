package model

// MapBounds the visible viewport of the directory map, in degrees.
type MapBounds struct {
	South float64 `json:"south" form:"south"`
	West  float64 `json:"west" form:"west"`
	North float64 `json:"north" form:"north"`
	East  float64 `json:"east" form:"east"`
}

// ClusterFilters optional filters applied before clustering.
type ClusterFilters struct {
	BusinessTypes []string `json:"business_types,omitempty" form:"business_types"`
	MinRating     float64  `json:"min_rating,omitempty" form:"min_rating"`
	VerifiedOnly  *bool    `json:"verified_only,omitempty" form:"verified_only"`
}

// BusinessCluster an ephemeral aggregation of nearby businesses for one map
// viewport. Clusters are recomputed per query and never persisted.
type BusinessCluster struct {
	ClusterID     string             `json:"cluster_id" db:"cluster_id"`
	ClusterLat    float64            `json:"cluster_lat" db:"cluster_lat"`
	ClusterLng    float64            `json:"cluster_lng" db:"cluster_lng"`
	BusinessCount int                `json:"business_count" db:"business_count"`
	AvgRating     float64            `json:"avg_rating" db:"avg_rating"`
	DominantType  string             `json:"dominant_type" db:"dominant_type"`
	CulturalMix   map[string]float64 `json:"cultural_mix,omitempty" db:"cultural_mix"`
	BusinessIDs   []string           `json:"business_ids,omitempty" db:"business_ids"`
}
