package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobData is the job category payload. Every listing carries one because the
// storage schema requires it, not because every listing is a job.
type JobData struct {
	JobRole            string `json:"jobRole"`
	JobCategory        string `json:"jobCategory"`
	CompanyName        string `json:"companyName"`
	PositionType       string `json:"positionType"`
	SalaryPeriod       string `json:"salaryPeriod"`
	SalaryFrom         string `json:"salaryFrom"`
	SalaryTo           string `json:"salaryTo"`
	EducationRequired  string `json:"educationRequired"`
	ExperienceRequired string `json:"experienceRequired"`
	JobLocation        string `json:"jobLocation"`
	Skills             string `json:"skills"`
	Openings           string `json:"openings"`
}

// Product is a classifieds listing. Field and column names, including the
// legacy "catagory"/"subcatagory" spellings, are the wire contract for
// listing read endpoints.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"_id"`
	UserEmail   string    `gorm:"column:useremail;index" json:"useremail"`
	Title       string    `gorm:"column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	Address     datatypes.JSON `gorm:"column:address" json:"address"`
	Price       string    `gorm:"column:price" json:"price"`

	ProductPic1  string `gorm:"column:productpic1" json:"productpic1"`
	ProductPic2  string `gorm:"column:productpic2" json:"productpic2"`
	ProductPic3  string `gorm:"column:productpic3" json:"productpic3"`
	ProductPic4  string `gorm:"column:productpic4" json:"productpic4"`
	ProductPic5  string `gorm:"column:productpic5" json:"productpic5"`
	ProductPic6  string `gorm:"column:productpic6" json:"productpic6"`
	ProductPic7  string `gorm:"column:productpic7" json:"productpic7"`
	ProductPic8  string `gorm:"column:productpic8" json:"productpic8"`
	ProductPic9  string `gorm:"column:productpic9" json:"productpic9"`
	ProductPic10 string `gorm:"column:productpic10" json:"productpic10"`
	ProductPic11 string `gorm:"column:productpic11" json:"productpic11"`
	ProductPic12 string `gorm:"column:productpic12" json:"productpic12"`

	Owner        string `gorm:"column:owner" json:"owner"`
	OwnerPicture string `gorm:"column:ownerpicture" json:"ownerpicture"`
	Category     string `gorm:"column:catagory;not null" json:"catagory"`
	Subcategory  string `gorm:"column:subcatagory;not null" json:"subcatagory"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`

	IsPromoted         bool       `gorm:"column:is_promoted;default:false" json:"isPromoted"`
	PromotionStartDate *time.Time `gorm:"column:promotion_start_date" json:"promotionStartDate"`
	PromotionEndDate   *time.Time `gorm:"column:promotion_end_date" json:"promotionEndDate"`
	PromotionPaymentID string     `gorm:"column:promotion_payment_id" json:"promotionPaymentId"`
	PromotionOrderID   string     `gorm:"column:promotion_order_id" json:"promotionOrderId"`

	VehicleData  datatypes.JSONMap           `gorm:"column:vehicle_data" json:"vehicleData"`
	CategoryData datatypes.JSONMap           `gorm:"column:category_data" json:"categoryData"`
	PropertyData datatypes.JSONMap           `gorm:"column:property_data" json:"propertyData"`
	JobData      datatypes.JSONType[JobData] `gorm:"column:job_data" json:"jobData"`
}

func (Product) TableName() string {
	return "Products"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PicSlots returns the twelve image slots in positional order.
func (p *Product) PicSlots() []*string {
	return []*string{
		&p.ProductPic1, &p.ProductPic2, &p.ProductPic3, &p.ProductPic4,
		&p.ProductPic5, &p.ProductPic6, &p.ProductPic7, &p.ProductPic8,
		&p.ProductPic9, &p.ProductPic10, &p.ProductPic11, &p.ProductPic12,
	}
}
