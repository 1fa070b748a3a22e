package service

import "github.com/stackos/catalog-backend/internal/app/model"

// Inputs are already type- and range-validated by the HTTP layer; the
// services only enforce domain rules (slug pattern, cross-references,
// uniqueness).

type CreateProductInput struct {
	Title             string
	Subtitle          string
	Description       string
	Slug              string
	Status            model.ProductStatus
	Weight            *int
	Height            *int
	Width             *int
	Depth             *int
	Metadata          model.JSONMap
	OriginCountry     string
	Options           []OptionInput
	Images            []string
	TagIDs            []uint
	MaterialIDs       []uint
	CategoryIDs       []uint
	Variants          []VariantInput
	ShippingOptionIDs []uint
}

type OptionInput struct {
	Name   string
	Values []string
}

type VariantInput struct {
	Title       string
	Description string
	SKU         string
	Quantity    int
	ManageStock *bool // nil means true
	Attributes  model.JSONMap
	// Options maps option name to the chosen value; both must resolve
	// against the product's options within the same operation.
	Options map[string]string
	Prices  []PriceInput
}

type PriceInput struct {
	Amount   int64
	Currency string
	Rules    model.JSONMap
	Type     model.PriceType
}

// UpdateProductInput carries a subset of the create fields. Nil means
// "leave unchanged"; a non-nil empty Variants or Images slice replaces the
// collection with nothing.
type UpdateProductInput struct {
	Title             *string
	Subtitle          *string
	Description       *string
	Slug              *string
	Status            *model.ProductStatus
	Weight            *int
	Height            *int
	Width             *int
	Depth             *int
	Metadata          model.JSONMap
	OriginCountry     *string
	Options           []OptionInput
	Images            []string
	TagIDs            []uint
	MaterialIDs       []uint
	CategoryIDs       []uint
	Variants          []VariantInput
	ShippingOptionIDs []uint
}

type CreateTagInput struct {
	Value string
}

type CreateMaterialInput struct {
	Value string
}

type CreateCategoryInput struct {
	Name        string
	Description string
	Slug        string
	ParentID    *uint
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Slug        *string
	ParentID    *uint
}

type CreateShippingOptionInput struct {
	Name              string
	PostalCode        string
	CountryCode       string
	IsShippingProfile bool
	Prices            []ShippingPriceInput
}

type UpdateShippingOptionInput struct {
	Name              *string
	PostalCode        *string
	CountryCode       *string
	IsShippingProfile *bool
	Prices            []ShippingPriceInput
}

type ShippingPriceInput struct {
	Amount   int64
	Currency string
	Rules    model.JSONMap
}
