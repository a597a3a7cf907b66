package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/furniture-store/internal/api/dto"
	"github.com/spec-kit/furniture-store/internal/repository"
	"github.com/spec-kit/furniture-store/internal/service"
	"github.com/spec-kit/furniture-store/internal/uploads"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// CatalogHandler serves colors, modules and furniture. Writes take multipart forms
// whose "photos" files are stored through the upload storage.
type CatalogHandler struct {
	catalog *service.CatalogService
	files   *uploads.Storage
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService, files *uploads.Storage) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, files: files}
}

func (h *CatalogHandler) photos(form *formData, prefix string) ([]string, error) {
	urls, err := h.files.SaveAll(form.fileList("photos"), prefix)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return urls, nil
}

// CreateColor POST /colors.
func (h *CatalogHandler) CreateColor(c *fiber.Ctx) error {
	form, err := readForm(c)
	if err != nil {
		return err
	}
	price, err := form.float("additional_price")
	if err != nil {
		return err
	}
	photos, err := h.photos(form, "color")
	if err != nil {
		return err
	}
	in := service.ColorInput{Name: form.text("name"), HexCode: form.optional("hex_code"), Photos: photos}
	if price != nil {
		in.AdditionalPrice = *price
	}
	color, err := h.catalog.CreateColor(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewColorResponse(color)})
}

// ListColors GET /colors.
func (h *CatalogHandler) ListColors(c *fiber.Ctx) error {
	colors, err := h.catalog.ListColors(c.UserContext(), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewColorResponses(colors)})
}

// GetColor GET /colors/:id.
func (h *CatalogHandler) GetColor(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	color, err := h.catalog.GetColor(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewColorResponse(color)})
}

// UpdateColor PUT /colors/:id.
func (h *CatalogHandler) UpdateColor(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	form, err := readForm(c)
	if err != nil {
		return err
	}
	price, err := form.float("additional_price")
	if err != nil {
		return err
	}
	photos, err := h.photos(form, "color")
	if err != nil {
		return err
	}
	color, err := h.catalog.UpdateColor(c.UserContext(), id, service.ColorUpdate{
		Name:            form.optional("name"),
		HexCode:         form.optional("hex_code"),
		AdditionalPrice: price,
		Photos:          photos,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewColorResponse(color)})
}

// DeleteColor DELETE /colors/:id.
func (h *CatalogHandler) DeleteColor(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteColor(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// CreateModule POST /modules.
func (h *CatalogHandler) CreateModule(c *fiber.Ctx) error {
	form, err := readForm(c)
	if err != nil {
		return err
	}
	price, err := form.float("price")
	if err != nil {
		return err
	}
	if price == nil {
		return apperrors.NewValidationError("price required", map[string]any{"field": "price"})
	}
	discounted, err := form.float("discounted_price")
	if err != nil {
		return err
	}
	colorIDs, err := form.ids("color_ids")
	if err != nil {
		return err
	}
	photos, err := h.photos(form, "module")
	if err != nil {
		return err
	}
	module, err := h.catalog.CreateModule(c.UserContext(), service.ModuleInput{
		Name:                form.text("name"),
		Article:             form.text("article"),
		Price:               *price,
		DiscountedPrice:     discounted,
		TechnicalDetails:    form.optional("technical_details"),
		AssemblyInstruction: form.optional("assembly_instruction"),
		ColorIDs:            colorIDs,
		Photos:              photos,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewModuleResponse(module)})
}

// ListModules GET /modules?name=.
func (h *CatalogHandler) ListModules(c *fiber.Ctx) error {
	modules, err := h.catalog.ListModules(c.UserContext(), repository.ModuleFilter{
		Name: c.Query("name"),
		Page: parsePage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewModuleResponses(modules)})
}

// GetModule GET /modules/:id.
func (h *CatalogHandler) GetModule(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	module, err := h.catalog.GetModule(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewModuleResponse(module)})
}

// UpdateModule PUT /modules/:id.
func (h *CatalogHandler) UpdateModule(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	form, err := readForm(c)
	if err != nil {
		return err
	}
	price, err := form.float("price")
	if err != nil {
		return err
	}
	discounted, err := form.float("discounted_price")
	if err != nil {
		return err
	}
	colorIDs, err := form.ids("color_ids")
	if err != nil {
		return err
	}
	photos, err := h.photos(form, "module")
	if err != nil {
		return err
	}
	module, err := h.catalog.UpdateModule(c.UserContext(), id, service.ModuleUpdate{
		Name:                form.optional("name"),
		Article:             form.optional("article"),
		Price:               price,
		DiscountedPrice:     discounted,
		TechnicalDetails:    form.optional("technical_details"),
		AssemblyInstruction: form.optional("assembly_instruction"),
		ColorIDs:            colorIDs,
		Photos:              photos,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewModuleResponse(module)})
}

// DeleteModule DELETE /modules/:id.
func (h *CatalogHandler) DeleteModule(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteModule(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// CreateFurniture POST /furniture.
func (h *CatalogHandler) CreateFurniture(c *fiber.Ctx) error {
	form, err := readForm(c)
	if err != nil {
		return err
	}
	price, err := form.float("price")
	if err != nil {
		return err
	}
	if price == nil {
		return apperrors.NewValidationError("price required", map[string]any{"field": "price"})
	}
	discounted, err := form.float("discounted_price")
	if err != nil {
		return err
	}
	colorIDs, err := form.ids("color_ids")
	if err != nil {
		return err
	}
	photos, err := h.photos(form, "furniture")
	if err != nil {
		return err
	}
	item, err := h.catalog.CreateFurniture(c.UserContext(), service.FurnitureInput{
		FurnitureType:            form.text("furniture_type"),
		Name:                     form.text("name"),
		Article:                  form.text("article"),
		Price:                    *price,
		DiscountedPrice:          discounted,
		TechnicalCharacteristics: form.optional("technical_characteristics"),
		Model:                    form.optional("model"),
		ColorIDs:                 colorIDs,
		Photos:                   photos,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFurnitureResponse(item)})
}

// ListFurniture GET /furniture?furniture_type=.
func (h *CatalogHandler) ListFurniture(c *fiber.Ctx) error {
	items, err := h.catalog.ListFurniture(c.UserContext(), repository.FurnitureFilter{
		FurnitureType: c.Query("furniture_type"),
		Page:          parsePage(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFurnitureResponses(items)})
}

// GetFurniture GET /furniture/:id.
func (h *CatalogHandler) GetFurniture(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	item, err := h.catalog.GetFurniture(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFurnitureResponse(item)})
}

// UpdateFurniture PUT /furniture/:id.
func (h *CatalogHandler) UpdateFurniture(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	form, err := readForm(c)
	if err != nil {
		return err
	}
	price, err := form.float("price")
	if err != nil {
		return err
	}
	discounted, err := form.float("discounted_price")
	if err != nil {
		return err
	}
	colorIDs, err := form.ids("color_ids")
	if err != nil {
		return err
	}
	photos, err := h.photos(form, "furniture")
	if err != nil {
		return err
	}
	item, err := h.catalog.UpdateFurniture(c.UserContext(), id, service.FurnitureUpdate{
		FurnitureType:            form.optional("furniture_type"),
		Name:                     form.optional("name"),
		Article:                  form.optional("article"),
		Price:                    price,
		DiscountedPrice:          discounted,
		TechnicalCharacteristics: form.optional("technical_characteristics"),
		Model:                    form.optional("model"),
		ColorIDs:                 colorIDs,
		Photos:                   photos,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFurnitureResponse(item)})
}

// DeleteFurniture DELETE /furniture/:id.
func (h *CatalogHandler) DeleteFurniture(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteFurniture(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
