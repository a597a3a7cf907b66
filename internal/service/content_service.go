package service

import (
	"context"
	"strings"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/repository"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// ContentService manages news articles.
type ContentService struct {
	news repository.NewsRepository
}

// NewContentService builds the service.
func NewContentService(news repository.NewsRepository) *ContentService {
	return &ContentService{news: news}
}

// NewsInput describes an article; MainPhoto and Photos are stored upload URLs.
type NewsInput struct {
	Title     string
	Text1     *string
	Text2     *string
	MainPhoto *string
	Photos    []string
}

// NewsUpdate applies non-nil fields; non-empty Photos replace the gallery.
type NewsUpdate struct {
	Title     *string
	Text1     *string
	Text2     *string
	MainPhoto *string
	Photos    []string
}

func (s *ContentService) Create(ctx context.Context, in NewsInput) (*domain.News, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	news := &domain.News{
		Title:     in.Title,
		Text1:     in.Text1,
		Text2:     in.Text2,
		MainPhoto: in.MainPhoto,
		Photos:    in.Photos,
	}
	if err := s.news.Create(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *ContentService) Get(ctx context.Context, id int64) (*domain.News, error) {
	news, err := s.news.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "News")
	}
	return news, nil
}

func (s *ContentService) List(ctx context.Context, page repository.Page) ([]domain.News, error) {
	return s.news.List(ctx, page)
}

func (s *ContentService) Update(ctx context.Context, id int64, in NewsUpdate) (*domain.News, error) {
	news, err := s.news.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "News")
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperrors.NewValidationError("title must not be empty", nil)
		}
		news.Title = *in.Title
	}
	if in.Text1 != nil {
		news.Text1 = in.Text1
	}
	if in.Text2 != nil {
		news.Text2 = in.Text2
	}
	if in.MainPhoto != nil {
		news.MainPhoto = in.MainPhoto
	}
	if len(in.Photos) > 0 {
		news.Photos = in.Photos
	}
	if err := s.news.Update(ctx, news); err != nil {
		return nil, notFound(err, "News")
	}
	return news, nil
}

func (s *ContentService) Delete(ctx context.Context, id int64) error {
	return notFound(s.news.Delete(ctx, id), "News")
}
