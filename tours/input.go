package tours

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/slugify"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// stringList accepts either a JSON array or a single comma-separated
// string, so clients can send includes/excludes/season either way.
type stringList []string

func (s *stringList) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*s = utils.SplitTags(raw)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	*s = arr
	return nil
}

// TourInput is the create/update request body. Every field is a pointer so
// an update can distinguish "absent" from "set to zero".
type TourInput struct {
	Title         *string                `json:"title"`
	ShortDesc     *string                `json:"short_description"`
	Description   *string                `json:"description"`
	Duration      *int                   `json:"duration"`
	Price         *float64               `json:"price"`
	OriginalPrice *float64               `json:"original_price"`
	Images        *[]string              `json:"images"`
	Destinations  *[]string              `json:"destinations"`
	Highlights    *[]string              `json:"highlights"`
	Itinerary     *[]models.ItineraryDay `json:"itinerary"`
	Includes      *stringList            `json:"includes"`
	Excludes      *stringList            `json:"excludes"`
	Difficulty    *string                `json:"difficulty"`
	GroupSize     *models.GroupSize      `json:"group_size"`
	Season        *stringList            `json:"season"`
	Category      *string                `json:"category"`
	Featured      *bool                  `json:"featured"`
	Status        *string                `json:"status"`
}

var tourStatuses = []string{
	models.TourStatusActive,
	models.TourStatusInactive,
	models.TourStatusDraft,
}

var difficulties = []string{
	models.DifficultyEasy,
	models.DifficultyModerate,
	models.DifficultyChallenging,
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// validate checks every field the input actually carries.
func (in TourInput) validate() error {
	if in.Price != nil && *in.Price < 0 {
		return apperr.Validation("price", "price cannot be negative")
	}
	if in.OriginalPrice != nil && *in.OriginalPrice < 0 {
		return apperr.Validation("original_price", "original price cannot be negative")
	}
	if in.Duration != nil && *in.Duration < 1 {
		return apperr.Validation("duration", "duration must be at least 1 day")
	}
	if in.GroupSize != nil {
		if in.GroupSize.Min < 0 || in.GroupSize.Max < 0 {
			return apperr.Validation("group_size", "group size cannot be negative")
		}
		if in.GroupSize.Min > in.GroupSize.Max {
			return apperr.Validation("group_size", "group size min cannot exceed max")
		}
	}
	if in.Status != nil && !contains(tourStatuses, *in.Status) {
		return apperr.Validation("status", "status must be active, inactive or draft")
	}
	if in.Difficulty != nil && *in.Difficulty != "" && !contains(difficulties, *in.Difficulty) {
		return apperr.Validation("difficulty", "difficulty must be Easy, Moderate or Challenging")
	}
	return nil
}

// newTour builds a Tour from a create request. The slug is derived from the
// title here, once; uniqueness is the caller's problem.
func newTour(in TourInput, userID string, now time.Time) (models.Tour, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return models.Tour{}, apperr.Validation("title", "title is required")
	}
	if err := in.validate(); err != nil {
		return models.Tour{}, err
	}

	title := strings.TrimSpace(*in.Title)
	tour := models.Tour{
		TourID:    utils.GenerateID(14),
		Slug:      slugify.Make(title),
		Title:     title,
		Duration:  1,
		Images:    []string{},
		Status:    models.TourStatusActive,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if tour.Slug == "" {
		return models.Tour{}, apperr.Validation("title", "title must contain at least one letter or digit")
	}

	if in.ShortDesc != nil {
		tour.ShortDesc = *in.ShortDesc
	}
	if in.Description != nil {
		tour.Description = *in.Description
	}
	if in.Duration != nil {
		tour.Duration = *in.Duration
	}
	if in.Price != nil {
		tour.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		tour.OriginalPrice = *in.OriginalPrice
	}
	if in.Images != nil {
		tour.Images = *in.Images
	}
	if in.Destinations != nil {
		tour.Destinations = *in.Destinations
	}
	if in.Highlights != nil {
		tour.Highlights = *in.Highlights
	}
	if in.Itinerary != nil {
		tour.Itinerary = *in.Itinerary
	}
	if in.Includes != nil {
		tour.Includes = []string(*in.Includes)
	}
	if in.Excludes != nil {
		tour.Excludes = []string(*in.Excludes)
	}
	if in.Difficulty != nil {
		tour.Difficulty = *in.Difficulty
	}
	if in.GroupSize != nil {
		tour.GroupSize = *in.GroupSize
	}
	if in.Season != nil {
		tour.Season = []string(*in.Season)
	}
	if in.Category != nil {
		tour.Category = *in.Category
	}
	if in.Featured != nil {
		tour.Featured = *in.Featured
	}
	if in.Status != nil {
		tour.Status = *in.Status
	}
	return tour, nil
}

// buildUpdate turns a partial input into a $set document. A title change
// recomputes the slug; the caller re-checks collision before committing.
func buildUpdate(in TourInput, now time.Time) (bson.M, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": now}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperr.Validation("title", "title cannot be empty")
		}
		slug := slugify.Make(title)
		if slug == "" {
			return nil, apperr.Validation("title", "title must contain at least one letter or digit")
		}
		set["title"] = title
		set["slug"] = slug
	}
	if in.ShortDesc != nil {
		set["short_description"] = *in.ShortDesc
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Duration != nil {
		set["duration"] = *in.Duration
	}
	if in.Price != nil {
		set["price"] = *in.Price
	}
	if in.OriginalPrice != nil {
		set["original_price"] = *in.OriginalPrice
	}
	if in.Images != nil {
		set["images"] = *in.Images
	}
	if in.Destinations != nil {
		set["destinations"] = *in.Destinations
	}
	if in.Highlights != nil {
		set["highlights"] = *in.Highlights
	}
	if in.Itinerary != nil {
		set["itinerary"] = *in.Itinerary
	}
	if in.Includes != nil {
		set["includes"] = []string(*in.Includes)
	}
	if in.Excludes != nil {
		set["excludes"] = []string(*in.Excludes)
	}
	if in.Difficulty != nil {
		set["difficulty"] = *in.Difficulty
	}
	if in.GroupSize != nil {
		set["group_size"] = *in.GroupSize
	}
	if in.Season != nil {
		set["season"] = []string(*in.Season)
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Featured != nil {
		set["featured"] = *in.Featured
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	return set, nil
}
