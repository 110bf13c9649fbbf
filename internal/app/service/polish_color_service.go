package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/woodnest/woodnest-backend/internal/app/model"
	"github.com/woodnest/woodnest-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrPolishColorNotFound     = errors.New("polish color not found")
	ErrPolishColorNameRequired = errors.New("polish color name is required")
	ErrInvalidHexCode          = errors.New("invalid hex color code")
)

var hexCodePattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type PolishColorService interface {
	ListPolishColors() ([]model.PolishColor, error)
	GetPolishColorByID(id uint) (*model.PolishColor, error)
	CreatePolishColor(name, hexCode, description string) (*model.PolishColor, error)
	UpdatePolishColor(id uint, name, hexCode, description string) (*model.PolishColor, error)
	DeletePolishColor(id uint) error
}

type polishColorService struct {
	colorRepo repository.PolishColorRepository
}

func NewPolishColorService(colorRepo repository.PolishColorRepository) PolishColorService {
	return &polishColorService{colorRepo: colorRepo}
}

// NormalizeHex canonicalizes a hex color code: surrounding whitespace is
// trimmed, a missing leading # is added and the digits are uppercased.
func NormalizeHex(hexCode string) (string, error) {
	hexCode = strings.TrimSpace(hexCode)
	if hexCode == "" {
		return "", nil
	}
	if !strings.HasPrefix(hexCode, "#") {
		hexCode = "#" + hexCode
	}
	if !hexCodePattern.MatchString(hexCode) {
		return "", ErrInvalidHexCode
	}
	return strings.ToUpper(hexCode), nil
}

func (s *polishColorService) ListPolishColors() ([]model.PolishColor, error) {
	return s.colorRepo.FindAll()
}

func (s *polishColorService) GetPolishColorByID(id uint) (*model.PolishColor, error) {
	color, err := s.colorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPolishColorNotFound
		}
		return nil, err
	}
	return color, nil
}

func (s *polishColorService) CreatePolishColor(name, hexCode, description string) (*model.PolishColor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPolishColorNameRequired
	}
	normalized, err := NormalizeHex(hexCode)
	if err != nil {
		return nil, err
	}

	color := model.PolishColor{Name: name, HexCode: normalized, Description: description}
	if err := s.colorRepo.Create(&color); err != nil {
		return nil, err
	}
	return &color, nil
}

func (s *polishColorService) UpdatePolishColor(id uint, name, hexCode, description string) (*model.PolishColor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPolishColorNameRequired
	}
	normalized, err := NormalizeHex(hexCode)
	if err != nil {
		return nil, err
	}

	color, err := s.GetPolishColorByID(id)
	if err != nil {
		return nil, err
	}

	color.Name = name
	color.HexCode = normalized
	color.Description = description
	if err := s.colorRepo.Update(color); err != nil {
		return nil, err
	}
	return color, nil
}

func (s *polishColorService) DeletePolishColor(id uint) error {
	if _, err := s.GetPolishColorByID(id); err != nil {
		return err
	}
	return s.colorRepo.Delete(id)
}
