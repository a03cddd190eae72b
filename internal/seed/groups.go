package seed

import (
	_ "embed"
	"fmt"

	"plume/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed groups.yaml
var groupPresets []byte

// GroupPreset is a permanent built-in group shipped with the application.
type GroupPreset struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type groupPresetFile struct {
	Groups []GroupPreset `yaml:"groups"`
}

// LoadGroupPresets parses the embedded preset catalogue.
func LoadGroupPresets() ([]GroupPreset, error) {
	var file groupPresetFile
	if err := yaml.Unmarshal(groupPresets, &file); err != nil {
		return nil, fmt.Errorf("failed to parse group presets: %w", err)
	}
	return file.Groups, nil
}

// Groups upserts the built-in groups. Safe to run on every deploy: existing
// groups are updated in place keyed by slug, so their IDs — and the posts
// pointing at them — are preserved.
func Groups(db *gorm.DB) error {
	presets, err := LoadGroupPresets()
	if err != nil {
		return err
	}

	for _, item := range presets {
		group := models.Group{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
		}

		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "updated_at"}),
		}).Create(&group).Error; err != nil {
			return fmt.Errorf("failed to upsert group %q: %w", item.Slug, err)
		}
	}
	return nil
}
