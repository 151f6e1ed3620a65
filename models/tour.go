package models

import "time"

const (
	TourStatusActive   = "active"
	TourStatusInactive = "inactive"
	TourStatusDraft    = "draft"
)

const (
	DifficultyEasy        = "Easy"
	DifficultyModerate    = "Moderate"
	DifficultyChallenging = "Challenging"
)

// GroupSize is the admissible headcount range for a tour.
type GroupSize struct {
	Min int `json:"min" bson:"min"`
	Max int `json:"max" bson:"max"`
}

type ItineraryDay struct {
	Day           int      `json:"day" bson:"day"`
	Title         string   `json:"title" bson:"title"`
	Description   string   `json:"description" bson:"description"`
	Activities    []string `json:"activities,omitempty" bson:"activities,omitempty"`
	Meals         []string `json:"meals,omitempty" bson:"meals,omitempty"`
	Accommodation string   `json:"accommodation,omitempty" bson:"accommodation,omitempty"`
}

type Tour struct {
	TourID        string         `json:"tourid" bson:"tourid"`
	Slug          string         `json:"slug" bson:"slug"`
	Title         string         `json:"title" bson:"title"`
	ShortDesc     string         `json:"short_description" bson:"short_description"`
	Description   string         `json:"description" bson:"description"`
	Duration      int            `json:"duration" bson:"duration"` // days
	Price         float64        `json:"price" bson:"price"`
	OriginalPrice float64        `json:"original_price,omitempty" bson:"original_price,omitempty"`
	Images        []string       `json:"images" bson:"images"`
	Destinations  []string       `json:"destinations,omitempty" bson:"destinations,omitempty"`
	Highlights    []string       `json:"highlights,omitempty" bson:"highlights,omitempty"`
	Itinerary     []ItineraryDay `json:"itinerary,omitempty" bson:"itinerary,omitempty"`
	Includes      []string       `json:"includes,omitempty" bson:"includes,omitempty"`
	Excludes      []string       `json:"excludes,omitempty" bson:"excludes,omitempty"`
	Difficulty    string         `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	GroupSize     GroupSize      `json:"group_size" bson:"group_size"`
	Season        []string       `json:"season,omitempty" bson:"season,omitempty"`
	Category      string         `json:"category,omitempty" bson:"category,omitempty"`
	Featured      bool           `json:"featured" bson:"featured"`
	Status        string         `json:"status" bson:"status"`
	CreatedBy     string         `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" bson:"updated_at"`
}
