package domain

import (
	"net/url"
	"strings"
)

// EquipmentType decides which kind of sets can be logged on a machine.
type EquipmentType string

const (
	EquipmentStrength EquipmentType = "strength"
	EquipmentCardio   EquipmentType = "cardio"
)

// Valid reports whether t is one of the known equipment types.
func (t EquipmentType) Valid() bool {
	return t == EquipmentStrength || t == EquipmentCardio
}

// DefaultEquipmentImageURL is the placeholder shown for machines without a picture.
const DefaultEquipmentImageURL = "https://source.unsplash.com/600x400/?gym-equipment-placeholder"

// Equipment is a single gym machine or station.
//
// CategoryName is a copy of the referenced category's name taken when the
// record was written. It is used for display without a lookup and by the
// seeding routine to link equipment to categories.
type Equipment struct {
	ID           string        `bson:"_id,omitempty" firestore:"-" json:"id"`
	Name         string        `bson:"name" firestore:"name" json:"name"`
	ImageURL     string        `bson:"imageUrl" firestore:"imageUrl" json:"imageUrl"`
	Info         string        `bson:"info,omitempty" firestore:"info,omitempty" json:"info,omitempty"`
	VideoURL     string        `bson:"videoUrl,omitempty" firestore:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Type         EquipmentType `bson:"type" firestore:"type" json:"type"`
	CategoryID   string        `bson:"categoryId" firestore:"categoryId" json:"categoryId"`
	CategoryName string        `bson:"categoryName" firestore:"categoryName" json:"categoryName"`
}

// IsStrength reports whether strength sets (weight x reps) are logged on this machine.
// Records without a type predate the field and are treated as strength equipment.
func (e *Equipment) IsStrength() bool {
	return e.Type != EquipmentCardio
}

// YouTubeEmbedURL turns a watch link (youtube.com/watch?v=ID or youtu.be/ID)
// into an embeddable player URL. It returns "" for anything else.
func YouTubeEmbedURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}

	var videoID string
	switch {
	case u.Hostname() == "youtu.be":
		videoID = strings.TrimPrefix(u.Path, "/")
	case strings.Contains(u.Hostname(), "youtube.com"):
		videoID = u.Query().Get("v")
	}
	if videoID == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + videoID
}
