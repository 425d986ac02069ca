package catalog

import (
	"encoding/json"
	"testing"

	"bazaar-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestParseCategoryPayload_Total(t *testing.T) {
	assert.Empty(t, ParseCategoryPayload(nil))
	assert.Empty(t, ParseCategoryPayload(json.RawMessage("")))
	assert.Empty(t, ParseCategoryPayload(json.RawMessage("{not json")))
	assert.Empty(t, ParseCategoryPayload(json.RawMessage(`"still not json"`)))
	assert.Empty(t, ParseCategoryPayload(json.RawMessage(`[1,2,3]`)))
	assert.Empty(t, ParseCategoryPayload(json.RawMessage(`42`)))
	assert.Empty(t, ParseCategoryPayload(json.RawMessage(`null`)))

	p := ParseCategoryPayload(json.RawMessage(`{"bedrooms": 3}`))
	require.NotNil(t, p)
	assert.Equal(t, float64(3), p["bedrooms"])
}

func TestParseCategoryPayload_DoubleEncoded(t *testing.T) {
	p := ParseCategoryPayload(json.RawMessage(`"{\"furnished\": true}"`))
	assert.Equal(t, true, p["furnished"])
}

func TestNormalizeForCreate_NonJobSynthesizesJobData(t *testing.T) {
	in := CreateProductInput{
		Title:       "iPhone 12",
		Price:       "45000",
		Name:        "Alice",
		Category:    "Electronics",
		Subcategory: "Mobile Phones",
		// jobData on a non-job listing is ignored entirely
		JobData: json.RawMessage(`{"jobRole": "Hacker", "openings": "99"}`),
	}

	p := NormalizeForCreate(in, "alice@test.com")
	jd := p.JobData.Data()

	assert.Equal(t, "iPhone 12", jd.JobRole)
	assert.Equal(t, "Mobile Phones", jd.JobCategory)
	assert.Equal(t, "Alice", jd.CompanyName)
	assert.Equal(t, "Full-time", jd.PositionType)
	assert.Equal(t, "Monthly", jd.SalaryPeriod)
	assert.Equal(t, "Any", jd.EducationRequired)
	assert.Equal(t, "Fresher", jd.ExperienceRequired)
	assert.Equal(t, "1", jd.Openings)
	assert.Equal(t, "", jd.SalaryFrom)
}

func TestNormalizeForCreate_JobBackfill(t *testing.T) {
	in := CreateProductInput{
		Title:       "Delivery Rider",
		Price:       "15000",
		Name:        "QuickShip",
		Category:    "Jobs",
		Subcategory: "Delivery Jobs",
		Address:     json.RawMessage(`[{"city": "Lahore", "state": "Punjab"}]`),
		JobData:     json.RawMessage(`{"positionType": "Part-time"}`),
	}

	p := NormalizeForCreate(in, "hr@quickship.com")
	jd := p.JobData.Data()

	assert.Equal(t, "Delivery Rider", jd.JobRole)
	assert.Equal(t, "Delivery Jobs", jd.JobCategory)
	assert.Equal(t, "QuickShip", jd.CompanyName)
	assert.Equal(t, "Lahore, Punjab", jd.JobLocation)
	assert.Equal(t, "15000", jd.SalaryFrom)
	assert.Equal(t, "Part-time", jd.PositionType)
}

func TestNormalizeForCreate_JobProvidedFieldsKept(t *testing.T) {
	in := CreateProductInput{
		Title:       "Something else",
		Category:    "Jobs",
		Subcategory: "IT Jobs",
		JobData: json.RawMessage(`{
			"jobRole": "Backend Engineer",
			"jobCategory": "Software",
			"companyName": "Acme",
			"salaryFrom": "90000",
			"jobLocation": "Remote"
		}`),
	}

	jd := NormalizeForCreate(in, "x@test.com").JobData.Data()

	assert.Equal(t, "Backend Engineer", jd.JobRole)
	assert.Equal(t, "Software", jd.JobCategory)
	assert.Equal(t, "Acme", jd.CompanyName)
	assert.Equal(t, "90000", jd.SalaryFrom)
	assert.Equal(t, "Remote", jd.JobLocation)
}

func TestNormalizeForCreate_RequiredFallbacks(t *testing.T) {
	// Empty title and subcategory: the hard fallbacks kick in so the stored
	// payload never has empty role or category.
	jd := NormalizeForCreate(CreateProductInput{Category: "Jobs"}, "x@test.com").JobData.Data()
	assert.Equal(t, "Product", jd.JobRole)
	assert.Equal(t, "General", jd.JobCategory)
}

func TestNormalizeForCreate_MalformedPayloadsNeverFail(t *testing.T) {
	in := CreateProductInput{
		Title:        "Plot for sale",
		Category:     "Property",
		Subcategory:  "Land",
		PropertyData: json.RawMessage(`"{{{{broken"`),
		VehicleData:  json.RawMessage(`[1,2]`),
		CategoryData: json.RawMessage(`not even json`),
	}

	p := NormalizeForCreate(in, "x@test.com")
	assert.Empty(t, map[string]interface{}(p.PropertyData))
	assert.Empty(t, map[string]interface{}(p.VehicleData))
	assert.Empty(t, map[string]interface{}(p.CategoryData))
}

func TestNormalizeForCreate_ImageSlotsCappedAtTwelve(t *testing.T) {
	files := make([]string, 15)
	for i := range files {
		files[i] = "https://img.test/" + string(rune('a'+i)) + ".jpg"
	}
	in := CreateProductInput{
		Title:         "Car",
		Category:      "Vehicles",
		Subcategory:   "Cars",
		UploadedFiles: files,
	}

	p := NormalizeForCreate(in, "x@test.com")
	slots := p.PicSlots()
	for i := 0; i < 12; i++ {
		assert.Equal(t, files[i], *slots[i], "slot %d", i)
	}
	// files 13-15 are dropped, never wrapped around
	assert.Equal(t, files[11], p.ProductPic12)
}

func TestNormalizeForCreate_EmptyAddressDefaults(t *testing.T) {
	p := NormalizeForCreate(CreateProductInput{
		Title: "X", Category: "Other", Subcategory: "Misc",
	}, "x@test.com")
	assert.Equal(t, "[]", string(p.Address))
}

func TestIsJobListing(t *testing.T) {
	assert.True(t, IsJobListing("Jobs", "Anything"))
	assert.True(t, IsJobListing("Services", "Part-time jobs"))
	assert.True(t, IsJobListing("Services", "JOB openings"))
	assert.False(t, IsJobListing("Vehicles", "Cars"))
}

func TestApplyUpdate_JobWhitelistAndDefaults(t *testing.T) {
	existing := &models.Product{
		Title:       "Shop Assistant",
		Price:       "20000",
		Owner:       "MegaMart",
		Category:    "Jobs",
		Subcategory: "Retail Jobs",
		Address:     datatypes.JSON(`[{"city": "Karachi", "state": "Sindh"}]`),
		JobData: datatypes.NewJSONType(models.JobData{
			JobRole: "Shop Assistant", JobCategory: "Retail Jobs",
		}),
	}

	ApplyUpdate(existing, UpdateProductInput{
		JobData: json.RawMessage(`{
			"jobRole": "Senior Shop Assistant",
			"salaryTo": "35000",
			"injected": "dropped",
			"isAdmin": true
		}`),
	})

	jd := existing.JobData.Data()
	assert.Equal(t, "Senior Shop Assistant", jd.JobRole)
	assert.Equal(t, "35000", jd.SalaryTo)
	// absent whitelisted fields get the fixed defaults
	assert.Equal(t, "Full-time", jd.PositionType)
	assert.Equal(t, "Monthly", jd.SalaryPeriod)
	assert.Equal(t, "Any", jd.EducationRequired)
	assert.Equal(t, "Fresher", jd.ExperienceRequired)
	assert.Equal(t, "1", jd.Openings)
	// required fields backfilled from the record
	assert.Equal(t, "Retail Jobs", jd.JobCategory)
	assert.Equal(t, "MegaMart", jd.CompanyName)
	assert.Equal(t, "20000", jd.SalaryFrom)
	assert.Equal(t, "Karachi, Sindh", jd.JobLocation)
}

func TestApplyUpdate_ScalarFieldsOnlyWhenPresent(t *testing.T) {
	existing := &models.Product{
		Title:       "Old title",
		Description: "Old description",
		Price:       "100",
		Category:    "Other",
		Subcategory: "Misc",
	}

	ApplyUpdate(existing, UpdateProductInput{Title: "New title"})
	assert.Equal(t, "New title", existing.Title)
	assert.Equal(t, "Old description", existing.Description)
	assert.Equal(t, "100", existing.Price)
}

func TestSanitizeJobData_RecordBackfill(t *testing.T) {
	p := &models.Product{
		Title:       "Security Guard",
		Price:       "18000",
		Owner:       "SafeCo",
		Category:    "Jobs",
		Subcategory: "Security Jobs",
		Address:     datatypes.JSON(`["DHA Phase 5"]`),
	}

	jd := SanitizeJobData(p, json.RawMessage(`{"openings": 4}`))
	assert.Equal(t, "Security Guard", jd.JobRole)
	assert.Equal(t, "Security Jobs", jd.JobCategory)
	assert.Equal(t, "SafeCo", jd.CompanyName)
	assert.Equal(t, "4", jd.Openings)
	assert.Equal(t, "DHA Phase 5", jd.JobLocation)
}

func TestLocationFromAddress(t *testing.T) {
	assert.Equal(t, "Lahore, Punjab", locationFromAddress(json.RawMessage(`[{"city":"Lahore","state":"Punjab"}]`)))
	assert.Equal(t, "Gulberg", locationFromAddress(json.RawMessage(`["Gulberg"]`)))
	assert.Equal(t, "Islamabad", locationFromAddress(json.RawMessage(`"Islamabad"`)))
	assert.Equal(t, "", locationFromAddress(json.RawMessage(`[]`)))
	assert.Equal(t, "", locationFromAddress(nil))
	assert.Equal(t, "", locationFromAddress(json.RawMessage(`{broken`)))
}

func TestTextCoercion(t *testing.T) {
	assert.Equal(t, "hello", text("hello"))
	assert.Equal(t, "3", text(float64(3)))
	assert.Equal(t, "3.5", text(float64(3.5)))
	assert.Equal(t, "true", text(true))
	assert.Equal(t, "", text(nil))
	assert.Equal(t, `{"a":"b"}`, text(map[string]interface{}{"a": "b"}))
}
