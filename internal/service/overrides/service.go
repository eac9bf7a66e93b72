package overrides

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/engine"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"
)

// maxEventIDLength ограничение длины идентификатора события
const maxEventIDLength = 512

// Service сервис ручных настроек администратора
type Service struct {
	repo      OverrideRepository
	snapshots SnapshotReader
	matchers  TitleMatcherProvider
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	repo OverrideRepository,
	snapshots SnapshotReader,
	matchers TitleMatcherProvider,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		snapshots: snapshots,
		matchers:  matchers,
		logger:    logger,
	}
}

// ListPrivateEvents личные события тренера в окне снимка с текущим флагом блокировки
func (s *Service) ListPrivateEvents(ctx context.Context) (*models.PrivateEventListResponse, error) {
	s.logger.Info("ListPrivateEvents: fetching")

	snap, overrides, err := s.load(ctx, "ListPrivateEvents")
	if err != nil {
		return nil, err
	}

	events := snap.PrivateEvents()
	resp := &models.PrivateEventListResponse{Events: make([]models.PrivateEventResponse, 0, len(events))}
	for _, ev := range events {
		resp.Events = append(resp.Events, models.PrivateEventResponse{
			ID:      ev.ID,
			Title:   ev.Title,
			Start:   ev.Start,
			End:     ev.End,
			AllDay:  ev.IsAllDayOn(ev.Start, ev.Start.Location()),
			Blocked: !overrides.PrivateSuppressed(ev.ID),
		})
	}

	s.logger.Info("ListPrivateEvents: successfully fetched %d events", len(resp.Events))
	return resp, nil
}

// ListFacilityHolds "枠抑え" во всех залах с флагом игнорирования и признаком реальной записи
func (s *Service) ListFacilityHolds(ctx context.Context) (*models.FacilityHoldListResponse, error) {
	s.logger.Info("ListFacilityHolds: fetching")

	snap, overrides, err := s.load(ctx, "ListFacilityHolds")
	if err != nil {
		return nil, err
	}

	matcher := s.matchers.Matcher()
	trainer := snap.TrainerEvents()

	resp := &models.FacilityHoldListResponse{Holds: make([]models.FacilityHoldResponse, 0)}
	for _, loc := range snap.Locations() {
		for _, ev := range snap.LocationEvents(loc) {
			if !matcher.IsFacilityHold(ev.Title) {
				continue
			}
			resp.Holds = append(resp.Holds, models.FacilityHoldResponse{
				ID:             ev.ID,
				Location:       loc,
				Room:           ev.Room,
				Title:          ev.Title,
				Start:          ev.Start,
				End:            ev.End,
				Ignored:        overrides.HoldIgnored(ev.ID),
				HasRealBooking: engine.HasRealBooking(matcher, trainer, ev),
			})
		}
	}
	sort.SliceStable(resp.Holds, func(i, j int) bool {
		return resp.Holds[i].Start.Before(resp.Holds[j].Start)
	})

	s.logger.Info("ListFacilityHolds: successfully fetched %d holds", len(resp.Holds))
	return resp, nil
}

// SetPrivateEvent сохраняет флаг блокировки личного события
func (s *Service) SetPrivateEvent(ctx context.Context, req *models.SetPrivateEventRequest) error {
	s.logger.Info("SetPrivateEvent: event=%s, blocked=%t", req.EventID, req.Blocked)

	return s.set(ctx, "SetPrivateEvent", domain.Override{
		Kind:    domain.OverridePrivateEvent,
		EventID: req.EventID,
		Value:   req.Blocked,
	})
}

// SetFacilityHold сохраняет флаг игнорирования "枠抑え"
func (s *Service) SetFacilityHold(ctx context.Context, req *models.SetFacilityHoldRequest) error {
	s.logger.Info("SetFacilityHold: event=%s, ignored=%t", req.EventID, req.Ignored)

	return s.set(ctx, "SetFacilityHold", domain.Override{
		Kind:    domain.OverrideFacilityHold,
		EventID: req.EventID,
		Value:   req.Ignored,
	})
}

// Reset удаляет все настройки одного вида (возврат к поведению по умолчанию)
func (s *Service) Reset(ctx context.Context, kind domain.OverrideKind) (*models.ResetResponse, error) {
	s.logger.Info("Reset: kind=%s", kind)

	if !kind.IsValid() {
		s.logger.Warn("Reset: invalid kind=%s", kind)
		return nil, ErrInvalidKind
	}

	deleted, err := s.repo.DeleteAll(ctx, kind)
	if err != nil {
		s.logger.Error("Reset: repository error for kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: Reset - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reset: successfully deleted %d overrides of kind=%s", deleted, kind)
	return &models.ResetResponse{Kind: kind, Deleted: deleted}, nil
}

// Import заменяет все настройки одного вида переданным набором
func (s *Service) Import(ctx context.Context, req *models.ImportRequest) error {
	s.logger.Info("Import: kind=%s, values=%d", req.Kind, len(req.Values))

	if !req.Kind.IsValid() {
		s.logger.Warn("Import: invalid kind=%s", req.Kind)
		return ErrInvalidKind
	}
	for id := range req.Values {
		if err := validateEventID(id); err != nil {
			s.logger.Warn("Import: validation failed: %v", err)
			return err
		}
	}

	if err := s.repo.ReplaceAll(ctx, req.Kind, req.Values); err != nil {
		s.logger.Error("Import: repository error for kind=%s: %v", req.Kind, err)
		return fmt.Errorf("%w: Import - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Import: successfully replaced overrides of kind=%s", req.Kind)
	return nil
}

// Вспомогательные методы

func (s *Service) set(ctx context.Context, op string, override domain.Override) error {
	if err := validateEventID(override.EventID); err != nil {
		s.logger.Warn("%s: validation failed: %v", op, err)
		return err
	}

	if err := s.repo.Set(ctx, override); err != nil {
		s.logger.Error("%s: repository error for event=%s: %v", op, override.EventID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully saved event=%s value=%t", op, override.EventID, override.Value)
	return nil
}

// load снимок и текущие настройки для админских списков
func (s *Service) load(ctx context.Context, op string) (*domain.Snapshot, domain.OverrideMaps, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		s.logger.Warn("%s: snapshot not loaded: %v", op, err)
		return nil, domain.OverrideMaps{}, ErrSnapshotNotLoaded
	}

	overrides, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, domain.OverrideMaps{}, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return snap, overrides, nil
}

// validateEventID проверяет идентификатор события
func validateEventID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	if len(id) > maxEventIDLength {
		return fmt.Errorf("%w: event id longer than %d bytes", ErrInvalidInput, maxEventIDLength)
	}
	return nil
}
