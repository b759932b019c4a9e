package domain

import (
	"errors"
	"time"
)

// Category is the fixed set of product categories sellers can list under.
type Category string

const (
	CategoryGulay          Category = "gulay"
	CategoryPrutas         Category = "prutas"
	CategoryDairyEggs      Category = "dairy & eggs"
	CategoryHerbsSpices    Category = "herbs & spices"
	CategoryOrganicSnacks  Category = "organic snacks"
	CategoryMeat           Category = "meat"
	CategoryFish           Category = "fish"
	CategoryClothes        Category = "clothes"
	CategoryHouseholdItems Category = "household items"
)

var categories = map[Category]struct{}{
	CategoryGulay:          {},
	CategoryPrutas:         {},
	CategoryDairyEggs:      {},
	CategoryHerbsSpices:    {},
	CategoryOrganicSnacks:  {},
	CategoryMeat:           {},
	CategoryFish:           {},
	CategoryClothes:        {},
	CategoryHouseholdItems: {},
}

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidCategory = errors.New("invalid category")
var ErrInsufficientQuantity = errors.New("insufficient quantity")

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	_, ok := categories[c]
	return ok
}

// Product is a listing owned by exactly one seller. The owner's name and
// business name are denormalised onto the listing at creation time so the
// catalog can be read without joining users. Quantity never goes negative;
// decrements are guarded before persisting.
type Product struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"user_id" bson:"user_id"`
	OwnerFirstName string    `json:"first_name" bson:"first_name"`
	OwnerLastName  string    `json:"last_name" bson:"last_name"`
	BusinessName   string    `json:"business_name" bson:"business_name"`
	Name           string    `json:"name" bson:"name"`
	Quantity       int       `json:"quantity" bson:"quantity"`
	UnitPrice      float64   `json:"unit_price" bson:"unit_price"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	Category       Category  `json:"category" bson:"category"`
	Image          string    `json:"image,omitempty" bson:"image,omitempty"`
	IsDeleted      bool      `json:"-" bson:"is_deleted"`
	DateOfUpload   time.Time `json:"date_of_upload" bson:"date_of_upload"`
}
