package model

import (
	"time"
)

// Activities is the fixed set of activities visitors can leave feedback for.
// The submission form and the validation rules share this list.
var Activities = []string{
	"Fitness Class",
	"Swim for Fitness",
	"Swim for All",
	"Gym",
	"Table Tennis",
	"Health Suite",
	"Cafe",
	"Multiple Activities",
}

// ValidActivity reports whether a is one of the known activity labels.
func ValidActivity(a string) bool {
	for _, known := range Activities {
		if a == known {
			return true
		}
	}
	return false
}

type Feedback struct {
	ID           string    `db:"id"`
	Email        *string   `db:"email"` // Nullable: only stored when supplied
	BetterID     *string   `db:"better_id"`
	Name         *string   `db:"name"`
	Activity     string    `db:"activity"`
	Rating       int       `db:"rating"`
	Comments     string    `db:"comments"`
	ConsentGiven bool      `db:"consent_given"`
	CreatedAt    time.Time `db:"created_at"`
}
