package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/woodnest/woodnest-backend/internal/app/model"
)

var (
	ErrLastDimension    = errors.New("a product must keep at least one dimension")
	ErrLastVariant      = errors.New("a product must keep at least one variant")
	ErrDimensionInUse   = errors.New("dimension is referenced by a variant")
	ErrColorNotSelected = errors.New("polish color is not selected on this product")
	ErrInvalidDraft     = errors.New("invalid product draft")
)

// DimensionEntry is one size option in an edit session. Entries have no
// identity of their own; variants reference them by position, and the
// position is resolved to a persisted ID when the draft is saved.
type DimensionEntry struct {
	Name   string
	Width  *float64
	Height *float64
	Depth  *float64
	Length *float64
	Price  float64
}

// VariantEntry pairs a dimension (by position) with a polish color.
type VariantEntry struct {
	DimensionIndex int
	PolishColorID  uint
	StockQuantity  int
}

// StagedImage is a newly added file, held in memory until the draft is
// saved. Nothing is uploaded before submit.
type StagedImage struct {
	Filename    string
	ContentType string
	Data        []byte
	IsPrimary   bool
}

// KeptImage references an already persisted image the admin kept.
type KeptImage struct {
	ImageID   uint
	IsPrimary bool
}

// ColorImages is the image set of one polish color within a draft.
// Persisted images missing from Kept are deleted on save; Staged images
// are uploaded and inserted on save.
type ColorImages struct {
	Kept   []KeptImage
	Staged []StagedImage
}

// ProductDraft models one admin edit session for a product: the form
// state between opening the editor and submitting it. All mutations are
// in-memory; SaveProduct persists the whole draft sequentially.
type ProductDraft struct {
	ProductID   uint // zero for a new product
	Name        string
	Description string
	CategoryID  uint
	BasePrice   float64
	Tags        []string
	Dimensions  []DimensionEntry
	Variants    []VariantEntry
	ColorIDs    []uint
	Images      map[uint]*ColorImages // keyed by polish color ID

	cascadeOnColorRemoval bool
}

// NewProductDraft starts an empty draft for a new product.
func NewProductDraft(cascadeOnColorRemoval bool) *ProductDraft {
	return &ProductDraft{
		Images:                make(map[uint]*ColorImages),
		cascadeOnColorRemoval: cascadeOnColorRemoval,
	}
}

// NewDraftFromProduct opens an edit session over a persisted product,
// converting variant dimension references back into positions.
func NewDraftFromProduct(p *model.Product, cascadeOnColorRemoval bool) *ProductDraft {
	draft := NewProductDraft(cascadeOnColorRemoval)
	draft.ProductID = p.ID
	draft.Name = p.Name
	draft.Description = p.Description
	draft.CategoryID = p.CategoryID
	draft.BasePrice = p.BasePrice
	draft.Tags = append(draft.Tags, p.Tags...)

	indexByDimensionID := make(map[uint]int, len(p.Dimensions))
	for i, d := range p.Dimensions {
		indexByDimensionID[d.ID] = i
		draft.Dimensions = append(draft.Dimensions, DimensionEntry{
			Name:   d.Name,
			Width:  d.Width,
			Height: d.Height,
			Depth:  d.Depth,
			Length: d.Length,
			Price:  d.Price,
		})
	}

	for _, v := range p.Variants {
		draft.Variants = append(draft.Variants, VariantEntry{
			DimensionIndex: indexByDimensionID[v.DimensionID],
			PolishColorID:  v.PolishColorID,
			StockQuantity:  v.StockQuantity,
		})
	}

	for _, c := range p.Colors {
		draft.ColorIDs = append(draft.ColorIDs, c.ID)
	}

	for _, img := range p.Images {
		set := draft.imageSet(img.PolishColorID)
		set.Kept = append(set.Kept, KeptImage{ImageID: img.ID, IsPrimary: img.IsPrimary})
	}

	return draft
}

func (d *ProductDraft) imageSet(colorID uint) *ColorImages {
	set, ok := d.Images[colorID]
	if !ok {
		set = &ColorImages{}
		d.Images[colorID] = set
	}
	return set
}

// AddDimension appends a size option.
func (d *ProductDraft) AddDimension(entry DimensionEntry) {
	d.Dimensions = append(d.Dimensions, entry)
}

// RemoveDimension drops the dimension at index. The last remaining
// dimension cannot be removed, and neither can one still referenced by a
// variant. Variant references past the removed index shift down.
func (d *ProductDraft) RemoveDimension(index int) error {
	if index < 0 || index >= len(d.Dimensions) {
		return fmt.Errorf("%w: dimension index %d out of range", ErrInvalidDraft, index)
	}
	if len(d.Dimensions) == 1 {
		return ErrLastDimension
	}
	for _, v := range d.Variants {
		if v.DimensionIndex == index {
			return ErrDimensionInUse
		}
	}

	d.Dimensions = append(d.Dimensions[:index], d.Dimensions[index+1:]...)
	for i := range d.Variants {
		if d.Variants[i].DimensionIndex > index {
			d.Variants[i].DimensionIndex--
		}
	}
	return nil
}

// AddVariant appends a dimension × color combination.
func (d *ProductDraft) AddVariant(entry VariantEntry) error {
	if entry.DimensionIndex < 0 || entry.DimensionIndex >= len(d.Dimensions) {
		return fmt.Errorf("%w: dimension index %d out of range", ErrInvalidDraft, entry.DimensionIndex)
	}
	if !d.colorSelected(entry.PolishColorID) {
		return ErrColorNotSelected
	}
	d.Variants = append(d.Variants, entry)
	return nil
}

// RemoveVariant drops the variant at index, refusing to drop the last one.
func (d *ProductDraft) RemoveVariant(index int) error {
	if index < 0 || index >= len(d.Variants) {
		return fmt.Errorf("%w: variant index %d out of range", ErrInvalidDraft, index)
	}
	if len(d.Variants) == 1 {
		return ErrLastVariant
	}
	d.Variants = append(d.Variants[:index], d.Variants[index+1:]...)
	return nil
}

func (d *ProductDraft) colorSelected(colorID uint) bool {
	for _, id := range d.ColorIDs {
		if id == colorID {
			return true
		}
	}
	return false
}

// ToggleColor selects or deselects a polish color. Deselecting only
// cascades into variants and images when the cascade flag is on;
// otherwise existing references to the color are left alone.
func (d *ProductDraft) ToggleColor(colorID uint) {
	for i, id := range d.ColorIDs {
		if id != colorID {
			continue
		}
		d.ColorIDs = append(d.ColorIDs[:i], d.ColorIDs[i+1:]...)
		if d.cascadeOnColorRemoval {
			kept := d.Variants[:0]
			for _, v := range d.Variants {
				if v.PolishColorID != colorID {
					kept = append(kept, v)
				}
			}
			d.Variants = kept
			d.Images[colorID] = &ColorImages{} // drops staged files, marks persisted ones for deletion
		}
		return
	}
	d.ColorIDs = append(d.ColorIDs, colorID)
}

// StageImages queues new files for a color. They stay in memory until
// the draft is saved.
func (d *ProductDraft) StageImages(colorID uint, images ...StagedImage) error {
	if !d.colorSelected(colorID) {
		return ErrColorNotSelected
	}
	set := d.imageSet(colorID)
	set.Staged = append(set.Staged, images...)
	return nil
}

// RemoveStagedImage drops a staged file before it was ever uploaded.
func (d *ProductDraft) RemoveStagedImage(colorID uint, index int) error {
	set, ok := d.Images[colorID]
	if !ok || index < 0 || index >= len(set.Staged) {
		return fmt.Errorf("%w: staged image index %d out of range", ErrInvalidDraft, index)
	}
	set.Staged = append(set.Staged[:index], set.Staged[index+1:]...)
	return nil
}

// RemoveKeptImage unmarks a persisted image as kept; it will be deleted
// from storage and from its record when the draft is saved.
func (d *ProductDraft) RemoveKeptImage(colorID uint, imageID uint) error {
	set, ok := d.Images[colorID]
	if !ok {
		return fmt.Errorf("%w: no images for color %d", ErrInvalidDraft, colorID)
	}
	for i, kept := range set.Kept {
		if kept.ImageID == imageID {
			set.Kept = append(set.Kept[:i], set.Kept[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: image %d not kept for color %d", ErrInvalidDraft, imageID, colorID)
}

// SetPrimary marks exactly one image of a color as primary, clearing the
// flag on every other image of that color. isExisting selects between
// the kept set and the staged set.
func (d *ProductDraft) SetPrimary(colorID uint, index int, isExisting bool) error {
	set, ok := d.Images[colorID]
	if !ok {
		return fmt.Errorf("%w: no images for color %d", ErrInvalidDraft, colorID)
	}
	if isExisting {
		if index < 0 || index >= len(set.Kept) {
			return fmt.Errorf("%w: image index %d out of range", ErrInvalidDraft, index)
		}
	} else {
		if index < 0 || index >= len(set.Staged) {
			return fmt.Errorf("%w: image index %d out of range", ErrInvalidDraft, index)
		}
	}

	for i := range set.Kept {
		set.Kept[i].IsPrimary = isExisting && i == index
	}
	for i := range set.Staged {
		set.Staged[i].IsPrimary = !isExisting && i == index
	}
	return nil
}

// Validate checks the draft before any write happens. Validation
// failures never leave partial state behind.
func (d *ProductDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDraft)
	}
	if d.CategoryID == 0 {
		return fmt.Errorf("%w: category is required", ErrInvalidDraft)
	}
	if len(d.Dimensions) == 0 {
		return fmt.Errorf("%w: at least one dimension is required", ErrInvalidDraft)
	}
	if len(d.Variants) == 0 {
		return fmt.Errorf("%w: at least one variant is required", ErrInvalidDraft)
	}
	for i, v := range d.Variants {
		if v.DimensionIndex < 0 || v.DimensionIndex >= len(d.Dimensions) {
			return fmt.Errorf("%w: variant %d references dimension index %d out of range", ErrInvalidDraft, i, v.DimensionIndex)
		}
		// Without the cascade flag, variants may keep referencing a
		// deselected color; the original back office behaved that way.
		if d.cascadeOnColorRemoval && !d.colorSelected(v.PolishColorID) {
			return fmt.Errorf("%w: variant %d references unselected color %d", ErrInvalidDraft, i, v.PolishColorID)
		}
	}
	return nil
}
