package slugify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Sundarbans Adventure", "sundarbans-adventure"},
		{"already lowercase", "coxs bazar", "coxs-bazar"},
		{"punctuation collapses", "Cox's Bazar -- Beach & Sea!", "cox-s-bazar-beach-sea"},
		{"leading and trailing separators", "  --Sajek Valley--  ", "sajek-valley"},
		{"digits survive", "3 Days in Bandarban", "3-days-in-bandarban"},
		{"unicode drops", "Saint Martin দ্বীপ", "saint-martin"},
		{"only separators", "!!! --- ???", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestMakeSameTitleNormalizesSameSlug(t *testing.T) {
	// Two differently formatted spellings of the same title land on the same
	// slug, which is exactly what the uniqueness check has to catch.
	assert.Equal(t, Make("Sajek Valley Tour"), Make("  SAJEK  VALLEY  TOUR!  "))
}
