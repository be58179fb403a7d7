package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"wardrobe101/internal/domain/entity"
)

// draftFile is the on-disk listing draft: the form fields plus a path per image slot.
// Relative image paths resolve against the draft file's directory.
type draftFile struct {
	entity.ListingDraft `yaml:",inline"`
	Images              map[entity.ImageSlot]string `yaml:"images"`
}

func loadDraft(path string) (*entity.ListingDraft, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}

	var file draftFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse draft %s: %w", path, err)
	}

	draft := file.ListingDraft
	if draft.Mode == "" {
		draft.Mode = entity.ModeBoth
	}
	draft.Images = make(map[entity.ImageSlot]*entity.DraftImage, len(file.Images))

	dir := filepath.Dir(path)
	for slot, imagePath := range file.Images {
		if imagePath == "" {
			continue
		}
		if !filepath.IsAbs(imagePath) {
			imagePath = filepath.Join(dir, imagePath)
		}
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return nil, fmt.Errorf("read %s image: %w", slot, err)
		}
		draft.Images[slot] = &entity.DraftImage{Filename: filepath.Base(imagePath), Data: data}
	}
	return &draft, nil
}
