package domain

import "fmt"

// Side marks one half of a unilateral strength set.
type Side string

const (
	SideLeft  Side = "Left"
	SideRight Side = "Right"
)

// SetData is one logged set. Strength sets carry Weight and Reps (and Side
// when logged per limb); cardio sets carry Duration (minutes) and Distance (km).
// Numbers are kept as the strings the user typed.
type SetData struct {
	Weight   string `bson:"weight,omitempty" firestore:"weight,omitempty" json:"weight,omitempty"`
	Reps     string `bson:"reps,omitempty" firestore:"reps,omitempty" json:"reps,omitempty"`
	Side     Side   `bson:"side,omitempty" firestore:"side,omitempty" json:"side,omitempty"`
	Duration string `bson:"duration,omitempty" firestore:"duration,omitempty" json:"duration,omitempty"`
	Distance string `bson:"distance,omitempty" firestore:"distance,omitempty" json:"distance,omitempty"`
}

// IsStrength reports whether the set has the weight x reps shape.
func (s SetData) IsStrength() bool {
	return s.Weight != "" && s.Reps != ""
}

// String renders the set the way the history view prints it.
func (s SetData) String() string {
	prefix := ""
	if s.Side != "" {
		prefix = string(s.Side) + " - "
	}
	if s.IsStrength() {
		return fmt.Sprintf("%s%s kg x %s reps", prefix, s.Weight, s.Reps)
	}
	return fmt.Sprintf("%s%s min - %s km", prefix, s.Duration, s.Distance)
}

// WorkoutSession is one user's sets on one machine at one point in time.
// Sessions are stored per user and never modified after saving.
type WorkoutSession struct {
	ID            string    `bson:"_id,omitempty" firestore:"-" json:"id,omitempty"`
	UserID        string    `bson:"userId" firestore:"userId" json:"userId"`
	EquipmentID   string    `bson:"equipmentId" firestore:"equipmentId" json:"equipmentId"`
	EquipmentName string    `bson:"equipmentName" firestore:"equipmentName" json:"equipmentName"`
	CreatedAt     string    `bson:"createdAt" firestore:"createdAt" json:"createdAt"` // ISO-8601, UTC
	Sets          []SetData `bson:"sets" firestore:"sets" json:"sets"`
}

// TimestampLayout is the ISO-8601 form used for CreatedAt (millisecond
// precision, always UTC), so string order equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"
