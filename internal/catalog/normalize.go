package catalog

import (
	"encoding/json"
	"strings"

	"bazaar-backend/internal/models"

	"gorm.io/datatypes"
)

// Schema-level defaults for job payload fields.
const (
	defaultPositionType = "Full-time"
	defaultSalaryPeriod = "Monthly"
	defaultEducation    = "Any"
	defaultExperience   = "Fresher"
	defaultOpenings     = "1"

	fallbackJobRole     = "Product"
	fallbackJobCategory = "General"
)

// maxProductPics is the number of image slots on a listing.
const maxProductPics = 12

// CreateProductInput is the raw listing creation payload. Category payload
// fields stay raw until ParseCategoryPayload normalizes them.
type CreateProductInput struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         string          `json:"price"`
	Name          string          `json:"name"`
	Image         string          `json:"image"`
	Category      string          `json:"catagory"`
	Subcategory   string          `json:"subcatagory"`
	Address       json.RawMessage `json:"address"`
	PropertyData  json.RawMessage `json:"propertyData"`
	JobData       json.RawMessage `json:"jobData"`
	VehicleData   json.RawMessage `json:"vehicleData"`
	CategoryData  json.RawMessage `json:"categoryData"`
	UploadedFiles []string        `json:"uploadedFiles"`
}

// UpdateProductInput is the raw listing update payload. Empty fields are
// left untouched on the existing record.
type UpdateProductInput struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        string          `json:"price"`
	Address      json.RawMessage `json:"address"`
	JobData      json.RawMessage `json:"jobData"`
	PropertyData json.RawMessage `json:"propertyData"`
	VehicleData  json.RawMessage `json:"vehicleData"`
	CategoryData json.RawMessage `json:"categoryData"`
}

// jobSource carries the generic listing fields job defaults derive from,
// taken either from raw creation input or from an existing record.
type jobSource struct {
	Title       string
	Subcategory string
	Owner       string
	Price       string
	Address     json.RawMessage
}

// IsJobListing reports whether the category pair denotes a job listing.
func IsJobListing(category, subcategory string) bool {
	return category == "Jobs" || strings.Contains(strings.ToLower(subcategory), "job")
}

// NormalizeForCreate produces a persisted listing record from raw creation
// input. It never fails: malformed payloads degrade to empty values and the
// job payload invariants are enforced on every path.
func NormalizeForCreate(in CreateProductInput, userEmail string) *models.Product {
	property := ParseCategoryPayload(in.PropertyData)
	vehicle := ParseCategoryPayload(in.VehicleData)
	categoryData := ParseCategoryPayload(in.CategoryData)

	src := jobSource{
		Title:       in.Title,
		Subcategory: in.Subcategory,
		Owner:       in.Name,
		Price:       in.Price,
		Address:     in.Address,
	}

	var jd models.JobData
	if !IsJobListing(in.Category, in.Subcategory) {
		// Non-job listings still need a minimally populated job payload to
		// satisfy the storage schema; the raw jobData input is ignored.
		jd = deriveJobDefaults(src)
	} else {
		jd = jobDataFromPayload(ParseCategoryPayload(in.JobData), src)
	}
	ensureJobRequired(&jd, in.Title, in.Subcategory)

	address := in.Address
	if len(address) == 0 {
		address = json.RawMessage("[]")
	}

	p := &models.Product{
		UserEmail:    userEmail,
		Title:        in.Title,
		Description:  in.Description,
		Address:      datatypes.JSON(address),
		Price:        in.Price,
		Owner:        in.Name,
		OwnerPicture: in.Image,
		Category:     in.Category,
		Subcategory:  in.Subcategory,
		VehicleData:  datatypes.JSONMap(vehicle),
		CategoryData: datatypes.JSONMap(categoryData),
		PropertyData: datatypes.JSONMap(property),
		JobData:      datatypes.NewJSONType(jd),
	}

	slots := p.PicSlots()
	for i := 0; i < len(in.UploadedFiles) && i < maxProductPics; i++ {
		*slots[i] = in.UploadedFiles[i]
	}

	return p
}

// ApplyUpdate merges raw update input into an existing record. Job payload
// sanitization runs against the record's pre-update fields.
func ApplyUpdate(p *models.Product, in UpdateProductInput) {
	if payloadPresent(in.JobData) {
		jd := sanitizeJobUpdate(ParseCategoryPayload(in.JobData), p)
		ensureJobRequired(&jd, p.Title, p.Subcategory)
		p.JobData = datatypes.NewJSONType(jd)
	}

	if in.Title != "" {
		p.Title = in.Title
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Price != "" {
		p.Price = in.Price
	}
	if payloadPresent(in.Address) {
		p.Address = datatypes.JSON(in.Address)
	}
	if payloadPresent(in.PropertyData) {
		p.PropertyData = datatypes.JSONMap(ParseCategoryPayload(in.PropertyData))
	}
	if payloadPresent(in.VehicleData) {
		p.VehicleData = datatypes.JSONMap(ParseCategoryPayload(in.VehicleData))
	}
	if payloadPresent(in.CategoryData) {
		p.CategoryData = datatypes.JSONMap(ParseCategoryPayload(in.CategoryData))
	}
}

// SanitizeJobData replaces a record's job payload from raw input, dropping
// fields outside the whitelist and backfilling required fields from the
// record itself.
func SanitizeJobData(p *models.Product, raw json.RawMessage) models.JobData {
	jd := jobDataFromPayload(ParseCategoryPayload(raw), jobSource{
		Title:       p.Title,
		Subcategory: p.Subcategory,
		Owner:       p.Owner,
		Price:       p.Price,
		Address:     json.RawMessage(p.Address),
	})
	ensureJobRequired(&jd, p.Title, p.Subcategory)
	return jd
}

// deriveJobDefaults synthesizes the whole job payload from generic listing
// fields. Used for non-job listings, where the payload exists only to satisfy
// the storage schema.
func deriveJobDefaults(src jobSource) models.JobData {
	return models.JobData{
		JobRole:            src.Title,
		JobCategory:        src.Subcategory,
		CompanyName:        src.Owner,
		PositionType:       defaultPositionType,
		SalaryPeriod:       defaultSalaryPeriod,
		SalaryFrom:         "",
		SalaryTo:           "",
		EducationRequired:  defaultEducation,
		ExperienceRequired: defaultExperience,
		JobLocation:        "",
		Skills:             "",
		Openings:           defaultOpenings,
	}
}

// jobDataFromPayload builds a job payload from raw input, applying
// schema-level defaults for missing fields. When the required fields are
// absent they are backfilled from the listing's generic fields; fields the
// caller did provide are never overwritten.
func jobDataFromPayload(p CategoryPayload, src jobSource) models.JobData {
	jd := models.JobData{
		JobRole:            text(p["jobRole"]),
		JobCategory:        text(p["jobCategory"]),
		CompanyName:        text(p["companyName"]),
		PositionType:       textOr(p, "positionType", defaultPositionType),
		SalaryPeriod:       textOr(p, "salaryPeriod", defaultSalaryPeriod),
		SalaryFrom:         text(p["salaryFrom"]),
		SalaryTo:           text(p["salaryTo"]),
		EducationRequired:  textOr(p, "educationRequired", defaultEducation),
		ExperienceRequired: textOr(p, "experienceRequired", defaultExperience),
		JobLocation:        text(p["jobLocation"]),
		Skills:             text(p["skills"]),
		Openings:           textOr(p, "openings", defaultOpenings),
	}

	if jd.JobRole == "" || jd.JobCategory == "" {
		if jd.JobRole == "" {
			jd.JobRole = src.Title
		}
		if jd.JobCategory == "" {
			jd.JobCategory = src.Subcategory
		}
		if jd.JobLocation == "" {
			jd.JobLocation = locationFromAddress(src.Address)
		}
		if jd.SalaryFrom == "" {
			jd.SalaryFrom = src.Price
		}
	}
	if jd.CompanyName == "" {
		jd.CompanyName = src.Owner
	}
	return jd
}

// sanitizeJobUpdate applies the update whitelist: provided fields are coerced
// to text, absent fields get fixed defaults, and the required fields are
// backfilled from the existing record instead of fixed defaults.
func sanitizeJobUpdate(p CategoryPayload, existing *models.Product) models.JobData {
	jd := models.JobData{}

	set := func(dst *string, key, def string) {
		if v, ok := p[key]; ok {
			*dst = text(v)
		} else {
			*dst = def
		}
	}
	set(&jd.JobRole, "jobRole", "")
	set(&jd.JobCategory, "jobCategory", "")
	set(&jd.CompanyName, "companyName", "")
	set(&jd.PositionType, "positionType", defaultPositionType)
	set(&jd.SalaryPeriod, "salaryPeriod", defaultSalaryPeriod)
	set(&jd.SalaryFrom, "salaryFrom", "")
	set(&jd.SalaryTo, "salaryTo", "")
	set(&jd.EducationRequired, "educationRequired", defaultEducation)
	set(&jd.ExperienceRequired, "experienceRequired", defaultExperience)
	set(&jd.JobLocation, "jobLocation", "")
	set(&jd.Skills, "skills", "")
	set(&jd.Openings, "openings", defaultOpenings)

	if jd.JobRole == "" {
		jd.JobRole = existing.Title
	}
	if jd.JobCategory == "" {
		jd.JobCategory = existing.Subcategory
	}
	if jd.CompanyName == "" {
		jd.CompanyName = existing.Owner
	}
	if jd.SalaryFrom == "" {
		jd.SalaryFrom = existing.Price
	}

	if IsJobListing(existing.Category, existing.Subcategory) && jd.JobLocation == "" {
		jd.JobLocation = locationFromAddress(json.RawMessage(existing.Address))
	}

	return jd
}

// ensureJobRequired enforces the invariant that a persisted job payload has
// non-empty jobRole and jobCategory.
func ensureJobRequired(jd *models.JobData, title, subcategory string) {
	if jd.JobRole == "" {
		jd.JobRole = title
	}
	if jd.JobRole == "" {
		jd.JobRole = fallbackJobRole
	}
	if jd.JobCategory == "" {
		jd.JobCategory = subcategory
	}
	if jd.JobCategory == "" {
		jd.JobCategory = fallbackJobCategory
	}
}

// locationFromAddress extracts a display location from the list-valued
// address field: "city, state" from the first structured entry, the entry
// verbatim when it is a string, or the whole value when the address itself
// is a string.
func locationFromAddress(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch addr := v.(type) {
	case []interface{}:
		if len(addr) == 0 {
			return ""
		}
		switch first := addr[0].(type) {
		case map[string]interface{}:
			city := text(first["city"])
			state := text(first["state"])
			return strings.TrimSpace(city + ", " + state)
		case string:
			return first
		}
	case string:
		return addr
	}
	return ""
}

// textOr reads a whitelisted field with a schema default for absent values.
func textOr(p CategoryPayload, key, def string) string {
	if v, ok := p[key]; ok {
		if s := text(v); s != "" {
			return s
		}
	}
	return def
}

// payloadPresent reports whether a raw JSON field carries a value.
func payloadPresent(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s != "" && s != "null"
}
