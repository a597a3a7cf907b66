package domain

import "time"

// Color is a finish that modules and furniture can be ordered in.
type Color struct {
	ID              int64
	Name            string
	HexCode         *string
	AdditionalPrice float64
	Photos          []string
}

// Module is a modular furniture element sold individually.
type Module struct {
	ID                  int64
	Name                string
	Article             string
	Price               float64
	DiscountedPrice     *float64
	TechnicalDetails    *string
	AssemblyInstruction *string
	Photos              []string
	Colors              []Color
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EffectivePrice is the price a customer pays for the module.
func (m Module) EffectivePrice() float64 {
	if m.DiscountedPrice != nil {
		return *m.DiscountedPrice
	}
	return m.Price
}

// TotalPrice sums the effective prices of modules.
func TotalPrice(modules []Module) float64 {
	var total float64
	for _, m := range modules {
		total += m.EffectivePrice()
	}
	return total
}

// Furniture is a finished catalog item.
type Furniture struct {
	ID                       int64
	FurnitureType            string
	Name                     string
	Price                    float64
	DiscountedPrice          *float64
	Photos                   []string
	TechnicalCharacteristics *string
	Model                    *string
	Article                  string
	Colors                   []Color
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
