package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JoacoWn/FoodScan/internal/food"
)

// Common errors for the analyze service
var (
	ErrImageRequired    = errors.New("an image is required")
	ErrMealTypeRequired = errors.New("a meal type is required")
	ErrUnknownMealType  = errors.New("unknown meal type")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// AllowedImageExtensions are the file types the backend accepts.
var AllowedImageExtensions = []string{".png", ".jpg", ".jpeg"}

// UploadMealTypes are the meal types that can be sent with an image.
var UploadMealTypes = []string{
	food.MealBreakfast,
	food.MealLunch,
	food.MealAfternoonSnack,
	food.MealDinner,
	food.MealSnack,
}

// AnalyzeService uploads meal photos for analysis.
type AnalyzeService struct {
	backend Backend
	log     *slog.Logger
}

// NewAnalyzeService creates a new AnalyzeService
func NewAnalyzeService(backend Backend, log *slog.Logger) *AnalyzeService {
	return &AnalyzeService{backend: backend, log: log}
}

// CheckImageName validates the file extension against AllowedImageExtensions.
func CheckImageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrImageRequired
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedImageExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w %q: use png, jpg or jpeg", ErrUnsupportedImage, ext)
}

// ResolveMealType validates a user-supplied meal type and returns the tag
// to upload and the section the stored entry will appear under.
func ResolveMealType(input string) (section, tag string, err error) {
	if strings.TrimSpace(input) == "" {
		return "", "", ErrMealTypeRequired
	}
	tag, ok := food.UploadTag(input)
	if !ok {
		return "", "", fmt.Errorf("%w %q: use one of %s", ErrUnknownMealType, input, strings.Join(UploadMealTypes, ", "))
	}
	// The backend stores the tag, so the entry shows up under the tag's section.
	return food.NormalizeMealType(tag), tag, nil
}

// AnalyzeFile validates and uploads the image at path.
func (s *AnalyzeService) AnalyzeFile(ctx context.Context, path, mealType string) (*AnalyzeResult, error) {
	if err := CheckImageName(path); err != nil {
		return nil, err
	}
	section, tag, err := ResolveMealType(mealType)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	return s.upload(ctx, f, filepath.Base(path), section, tag)
}

// Analyze validates and uploads an image read from r.
func (s *AnalyzeService) Analyze(ctx context.Context, r io.Reader, filename, mealType string) (*AnalyzeResult, error) {
	if r == nil {
		return nil, ErrImageRequired
	}
	if err := CheckImageName(filename); err != nil {
		return nil, err
	}
	section, tag, err := ResolveMealType(mealType)
	if err != nil {
		return nil, err
	}
	return s.upload(ctx, r, filename, section, tag)
}

func (s *AnalyzeService) upload(ctx context.Context, r io.Reader, filename, section, tag string) (*AnalyzeResult, error) {
	s.log.Debug("uploading image", "file", filename, "meal_type", tag)

	result, err := s.backend.AnalyzeImage(ctx, r, filename, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze image: %w", err)
	}

	s.log.Info("image analyzed", "file", filename, "name", result.Name, "calories", result.Calories)
	return &AnalyzeResult{Result: result, MealType: section, UploadTag: tag}, nil
}
