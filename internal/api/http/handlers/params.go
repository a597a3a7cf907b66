package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/furniture-store/internal/repository"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidArgument("invalid " + name)
	}
	return id, nil
}

// parsePage reads skip/limit; bad values fall back to the defaults.
func parsePage(c *fiber.Ctx) repository.Page {
	return repository.Page{
		Skip:  parseInt(c.Query("skip"), 0),
		Limit: parseInt(c.Query("limit"), repository.DefaultLimit),
	}.Normalize()
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

// formData is a parsed multipart body. Absent fields are distinguishable from empty ones.
type formData struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
}

func readForm(c *fiber.Ctx) (*formData, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.NewValidationError("multipart form required", nil)
	}
	return &formData{values: mf.Value, files: mf.File}, nil
}

func (f *formData) text(key string) string {
	if v := f.values[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func (f *formData) optional(key string) *string {
	if _, ok := f.values[key]; !ok {
		return nil
	}
	v := f.text(key)
	return &v
}

func (f *formData) float(key string) (*float64, error) {
	raw := f.text(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.NewValidationError(key+" must be a number", map[string]any{"field": key})
	}
	return &v, nil
}

// ids decodes a JSON array of ids. A present but blank field yields an empty, non-nil slice.
func (f *formData) ids(key string) ([]int64, error) {
	if _, ok := f.values[key]; !ok {
		return nil, nil
	}
	raw := f.text(key)
	if raw == "" {
		return []int64{}, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, apperrors.NewValidationError(key+" must be a JSON array of ids", map[string]any{"field": key})
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (f *formData) fileList(key string) []*multipart.FileHeader {
	return f.files[key]
}
