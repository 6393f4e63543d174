package domain

import "time"

// BuildInfo records a successful extension build.
type BuildInfo struct {
	Extension    string        `json:"extension,omitzero"`
	Triplet      string        `json:"triplet,omitzero"`
	BuildType    string        `json:"build_type,omitzero"`
	ManifestHash string        `json:"manifest_hash,omitzero"`
	SourceHash   string        `json:"source_hash,omitzero"`
	Artifact     string        `json:"artifact,omitzero"`
	Duration     time.Duration `json:"duration,omitzero"`
	Timestamp    time.Time     `json:"timestamp,omitzero"`
}
