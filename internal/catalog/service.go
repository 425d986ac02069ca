package catalog

import (
	"context"
	"errors"

	"bazaar-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("Product not found")

// FieldError is a schema validation failure on one field, surfaced with the
// store error on failed persists.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail for a rejected persist.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Fields[0].Field + " " + e.Fields[0].Message
}

// Service is the listing store: CRUD and the query surface over listing
// records.
type Service struct {
	DB *gorm.DB
}

// Enumerated domains for the constrained job payload fields.
var (
	positionTypes    = []string{"Full-time", "Part-time", "Contract", "Freelance", "Internship", "Temporary"}
	salaryPeriods    = []string{"Monthly", "Yearly", "Hourly", "Weekly"}
	educationLevels  = []string{"Any", "10th Pass", "12th Pass", "Diploma", "Bachelor's Degree", "Master's Degree", "PhD", "Professional Certification"}
	experienceLevels = []string{"Fresher", "0-1 Years", "1-3 Years", "3-5 Years", "5-10 Years", "10+ Years"}
)

func inDomain(value string, allowed []string) bool {
	// Empty means unset; the normalizer fills the schema default before any
	// persist, so only explicit values are checked.
	if value == "" {
		return true
	}
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

func enumError(field, value string) FieldError {
	return FieldError{
		Field:   field,
		Message: "`" + value + "` is not a valid enum value for path `" + field + "`.",
	}
}

func validate(p *models.Product) error {
	var fields []FieldError
	if p.Category == "" {
		fields = append(fields, FieldError{Field: "catagory", Message: "Path `catagory` is required."})
	}
	if p.Subcategory == "" {
		fields = append(fields, FieldError{Field: "subcatagory", Message: "Path `subcatagory` is required."})
	}

	jd := p.JobData.Data()
	if !inDomain(jd.PositionType, positionTypes) {
		fields = append(fields, enumError("jobData.positionType", jd.PositionType))
	}
	if !inDomain(jd.SalaryPeriod, salaryPeriods) {
		fields = append(fields, enumError("jobData.salaryPeriod", jd.SalaryPeriod))
	}
	if !inDomain(jd.EducationRequired, educationLevels) {
		fields = append(fields, enumError("jobData.educationRequired", jd.EducationRequired))
	}
	if !inDomain(jd.ExperienceRequired, experienceLevels) {
		fields = append(fields, enumError("jobData.experienceRequired", jd.ExperienceRequired))
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create persists a normalized listing. Schema validation failures are
// surfaced with field-level detail; everything else passes through from the
// store.
func (s *Service) Create(ctx context.Context, p *models.Product) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Create(p).Error
}

// Save persists changes to an existing listing, re-running schema validation.
func (s *Service) Save(ctx context.Context, p *models.Product) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Save(p).Error
}

// ByID fetches one listing.
func (s *Service) ByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// OwnedByID fetches one listing scoped to its owner.
func (s *Service) OwnedByID(ctx context.Context, id uuid.UUID, email string) (*models.Product, error) {
	var p models.Product
	err := s.DB.WithContext(ctx).Where("id = ? AND useremail = ?", id, email).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ByOwner lists a user's own ads.
func (s *Service) ByOwner(ctx context.Context, email string) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.WithContext(ctx).Where("useremail = ?", email).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DeleteOwned removes a listing scoped to its owner and returns the deleted
// record so image references can be cleaned up.
func (s *Service) DeleteOwned(ctx context.Context, id uuid.UUID, email string) (*models.Product, error) {
	p, err := s.OwnedByID(ctx, id, email)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Delete(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// All lists every listing, promoted ones first, newest first.
func (s *Service) All(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.WithContext(ctx).
		Order("is_promoted DESC").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ByCategory lists listings whose category or subcategory matches.
func (s *Service) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.WithContext(ctx).
		Where("catagory = ? OR subcatagory = ?", category, category).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Search lists listings whose title contains the query, case-insensitively.
func (s *Service) Search(ctx context.Context, q string) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.WithContext(ctx).
		Where("LOWER(title) LIKE LOWER(?)", "%"+q+"%").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
