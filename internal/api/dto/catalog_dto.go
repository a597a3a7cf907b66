package dto

import (
	"time"

	"github.com/spec-kit/furniture-store/internal/domain"
)

// ColorResponse renders a color.
type ColorResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	HexCode         *string  `json:"hex_code"`
	AdditionalPrice float64  `json:"additional_price"`
	Photos          []string `json:"photos"`
}

// ModuleResponse renders a module with its colors.
type ModuleResponse struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Article             string          `json:"article"`
	Price               float64         `json:"price"`
	DiscountedPrice     *float64        `json:"discounted_price"`
	TechnicalDetails    *string         `json:"technical_details"`
	AssemblyInstruction *string         `json:"assembly_instruction"`
	Photos              []string        `json:"photos"`
	Colors              []ColorResponse `json:"colors"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// FurnitureResponse renders a furniture item with its colors.
type FurnitureResponse struct {
	ID                       int64           `json:"id"`
	FurnitureType            string          `json:"furniture_type"`
	Name                     string          `json:"name"`
	Article                  string          `json:"article"`
	Price                    float64         `json:"price"`
	DiscountedPrice          *float64        `json:"discounted_price"`
	TechnicalCharacteristics *string         `json:"technical_characteristics"`
	Model                    *string         `json:"model"`
	Photos                   []string        `json:"photos"`
	Colors                   []ColorResponse `json:"colors"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

func NewColorResponse(c *domain.Color) ColorResponse {
	return ColorResponse{
		ID:              c.ID,
		Name:            c.Name,
		HexCode:         c.HexCode,
		AdditionalPrice: c.AdditionalPrice,
		Photos:          nonNil(c.Photos),
	}
}

func NewColorResponses(colors []domain.Color) []ColorResponse {
	out := make([]ColorResponse, 0, len(colors))
	for i := range colors {
		out = append(out, NewColorResponse(&colors[i]))
	}
	return out
}

func NewModuleResponse(m *domain.Module) ModuleResponse {
	return ModuleResponse{
		ID:                  m.ID,
		Name:                m.Name,
		Article:             m.Article,
		Price:               m.Price,
		DiscountedPrice:     m.DiscountedPrice,
		TechnicalDetails:    m.TechnicalDetails,
		AssemblyInstruction: m.AssemblyInstruction,
		Photos:              nonNil(m.Photos),
		Colors:              NewColorResponses(m.Colors),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func NewModuleResponses(modules []domain.Module) []ModuleResponse {
	out := make([]ModuleResponse, 0, len(modules))
	for i := range modules {
		out = append(out, NewModuleResponse(&modules[i]))
	}
	return out
}

func NewFurnitureResponse(f *domain.Furniture) FurnitureResponse {
	return FurnitureResponse{
		ID:                       f.ID,
		FurnitureType:            f.FurnitureType,
		Name:                     f.Name,
		Article:                  f.Article,
		Price:                    f.Price,
		DiscountedPrice:          f.DiscountedPrice,
		TechnicalCharacteristics: f.TechnicalCharacteristics,
		Model:                    f.Model,
		Photos:                   nonNil(f.Photos),
		Colors:                   NewColorResponses(f.Colors),
		CreatedAt:                f.CreatedAt,
		UpdatedAt:                f.UpdatedAt,
	}
}

func NewFurnitureResponses(items []domain.Furniture) []FurnitureResponse {
	out := make([]FurnitureResponse, 0, len(items))
	for i := range items {
		out = append(out, NewFurnitureResponse(&items[i]))
	}
	return out
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
