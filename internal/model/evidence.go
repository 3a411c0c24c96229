package model

import "time"

// EvidenceItem is a trust-scored, tagged snippet cited in support of
// generated content. An empty EntityRefs slice marks topic-level
// evidence not tied to a specific entity.
type EvidenceItem struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Publisher   string    `json:"publisher"`
	PublishedAt time.Time `json:"publishedAt"`
	RetrievedAt time.Time `json:"retrievedAt"`
	Snippet     string    `json:"snippet"`
	TrustScore  float64   `json:"trustScore"`
	ClaimTags   []string  `json:"claimTags,omitempty"`
	EntityRefs  []string  `json:"entityRefs,omitempty"`
}
