package domain

import "time"

// SeedMarker records that the baseline catalog was written. It is committed
// in the same batch as the seeded categories and always has the same ID, so
// a second seeding attempt fails as a whole instead of duplicating data.
type SeedMarker struct {
	ID       string    `bson:"_id,omitempty" firestore:"-" json:"id"`
	Version  int       `bson:"version" firestore:"version" json:"version"`
	SeededAt time.Time `bson:"seededAt" firestore:"seededAt" json:"seededAt"`
}

// CatalogSeedMarkerID is the fixed document ID of the catalog seed marker.
const CatalogSeedMarkerID = "catalog"
