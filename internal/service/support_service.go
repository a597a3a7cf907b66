package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/domain"
	"github.com/spec-kit/furniture-store/internal/events"
	"github.com/spec-kit/furniture-store/internal/repository"
	apperrors "github.com/spec-kit/furniture-store/pkg/util/errorutil"
)

// SupportService records customer inquiries and operator answers.
type SupportService struct {
	requests   repository.SupportRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSupportService builds the service.
func NewSupportService(requests repository.SupportRepository, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *SupportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupportService{requests: requests, users: users, dispatcher: dispatcher, logger: logger}
}

// SupportInput describes a new request. UserID is nil for anonymous requests.
type SupportInput struct {
	UserID           *int64
	ContactInfo      string
	Status           string
	OperatorResponse *string
	OperatorStatus   *string
}

// SupportUpdate applies non-nil fields.
type SupportUpdate struct {
	ContactInfo      *string
	Status           *string
	OperatorResponse *string
	OperatorStatus   *string
}

func (s *SupportService) Create(ctx context.Context, in SupportInput) (*domain.SupportRequest, error) {
	if strings.TrimSpace(in.ContactInfo) == "" {
		return nil, apperrors.NewValidationError("contact_info required", nil)
	}
	if in.Status == "" {
		in.Status = domain.SupportStatusNew
	}
	if !validSupportStatus(in.Status) {
		return nil, apperrors.NewInvalidArgument("Invalid status")
	}
	if in.UserID != nil {
		if _, err := s.users.GetByID(ctx, *in.UserID); err != nil {
			return nil, notFound(err, "User")
		}
	}

	req := &domain.SupportRequest{
		UserID:           in.UserID,
		ContactInfo:      in.ContactInfo,
		Status:           in.Status,
		OperatorResponse: in.OperatorResponse,
		OperatorStatus:   in.OperatorStatus,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	var actor int64
	if req.UserID != nil {
		actor = *req.UserID
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventSupportRequestCreated, req.ID, actor,
		events.SupportRequestCreatedPayload{UserID: req.UserID}))
	return req, nil
}

func (s *SupportService) Get(ctx context.Context, id int64) (*domain.SupportRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Support request")
	}
	return req, nil
}

func (s *SupportService) List(ctx context.Context, filter repository.SupportFilter) ([]domain.SupportRequest, error) {
	return s.requests.List(ctx, filter)
}

func (s *SupportService) Update(ctx context.Context, id int64, in SupportUpdate) (*domain.SupportRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Support request")
	}
	if in.Status != nil {
		if !validSupportStatus(*in.Status) {
			return nil, apperrors.NewInvalidArgument("Invalid status")
		}
		req.Status = *in.Status
	}
	setString(&req.ContactInfo, in.ContactInfo)
	if in.OperatorResponse != nil {
		req.OperatorResponse = in.OperatorResponse
	}
	if in.OperatorStatus != nil {
		req.OperatorStatus = in.OperatorStatus
	}
	if err := s.requests.Update(ctx, req); err != nil {
		return nil, notFound(err, "Support request")
	}
	return req, nil
}

func (s *SupportService) Delete(ctx context.Context, id int64) error {
	return notFound(s.requests.Delete(ctx, id), "Support request")
}

func validSupportStatus(status string) bool {
	switch status {
	case domain.SupportStatusNew, domain.SupportStatusInProgress, domain.SupportStatusResolved:
		return true
	}
	return false
}
