package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/furniture-store/internal/api/dto"
	"github.com/spec-kit/furniture-store/internal/repository"
	"github.com/spec-kit/furniture-store/internal/service"
	"github.com/spec-kit/furniture-store/internal/uploads"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// NewsHandler manages news articles posted as multipart forms.
type NewsHandler struct {
	content *service.ContentService
	files   *uploads.Storage
}

// NewNewsHandler constructs handler.
func NewNewsHandler(content *service.ContentService, files *uploads.Storage) *NewsHandler {
	return &NewsHandler{content: content, files: files}
}

// media stores the optional main_photo file and the photos gallery.
func (h *NewsHandler) media(form *formData) (*string, []string, error) {
	var main *string
	if files := form.fileList("main_photo"); len(files) > 0 {
		url, err := h.files.Save(files[0], "news_main")
		if err != nil {
			return nil, nil, apperrors.NewInternalError(err)
		}
		main = &url
	}
	gallery, err := h.files.SaveAll(form.fileList("photos"), "news")
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	return main, gallery, nil
}

// Create POST /news.
func (h *NewsHandler) Create(c *fiber.Ctx) error {
	form, err := readForm(c)
	if err != nil {
		return err
	}
	main, gallery, err := h.media(form)
	if err != nil {
		return err
	}
	news, err := h.content.Create(c.UserContext(), service.NewsInput{
		Title:     form.text("title"),
		Text1:     form.optional("text1"),
		Text2:     form.optional("text2"),
		MainPhoto: main,
		Photos:    gallery,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewNewsResponse(news)})
}

// List GET /news, newest first.
func (h *NewsHandler) List(c *fiber.Ctx) error {
	items, err := h.content.List(c.UserContext(), parsePage(c))
	if err != nil {
		return err
	}
	out := make([]dto.NewsResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewNewsResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get GET /news/:id.
func (h *NewsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	news, err := h.content.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNewsResponse(news)})
}

// Update PUT /news/:id.
func (h *NewsHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	form, err := readForm(c)
	if err != nil {
		return err
	}
	main, gallery, err := h.media(form)
	if err != nil {
		return err
	}
	news, err := h.content.Update(c.UserContext(), id, service.NewsUpdate{
		Title:     form.optional("title"),
		Text1:     form.optional("text1"),
		Text2:     form.optional("text2"),
		MainPhoto: main,
		Photos:    gallery,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNewsResponse(news)})
}

// Delete DELETE /news/:id.
func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.content.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SupportHandler manages support requests.
type SupportHandler struct {
	support *service.SupportService
}

// NewSupportHandler constructs handler.
func NewSupportHandler(support *service.SupportService) *SupportHandler {
	return &SupportHandler{support: support}
}

// Create POST /support/requests. Anonymous; ?user_id= links the request to an account.
func (h *SupportHandler) Create(c *fiber.Ctx) error {
	var req dto.SupportCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	in := service.SupportInput{
		ContactInfo:      req.ContactInfo,
		Status:           req.Status,
		OperatorResponse: req.OperatorResponse,
		OperatorStatus:   req.OperatorStatus,
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewInvalidArgument("invalid user_id")
		}
		in.UserID = &userID
	}
	created, err := h.support.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSupportResponse(created)})
}

// List GET /support/requests?status=.
func (h *SupportHandler) List(c *fiber.Ctx) error {
	items, err := h.support.List(c.UserContext(), repository.SupportFilter{
		Status: c.Query("status"),
		Page:   parsePage(c),
	})
	if err != nil {
		return err
	}
	out := make([]dto.SupportResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewSupportResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get GET /support/requests/:id.
func (h *SupportHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	req, err := h.support.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSupportResponse(req)})
}

// Update PUT /support/requests/:id.
func (h *SupportHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.SupportUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.support.Update(c.UserContext(), id, service.SupportUpdate{
		ContactInfo:      req.ContactInfo,
		Status:           req.Status,
		OperatorResponse: req.OperatorResponse,
		OperatorStatus:   req.OperatorStatus,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSupportResponse(updated)})
}

// Delete DELETE /support/requests/:id.
func (h *SupportHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.support.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
