package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"parking_tracker/internal/domain"
	"parking_tracker/internal/repository"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"gopkg.in/guregu/null.v4"
)

var ErrMissingLicensePlate = errors.New("license plate is required")
var ErrVehicleTypeMismatch = errors.New("vehicle type does not match the spot type")
var ErrInvalidFilter = errors.New("invalid history filter")

const historyDateLayout = "2006-01-02"

// ParkingService owns the spot state machine. Every transition runs under a
// single mutex, so concurrent HTTP requests cannot interleave an occupy and a
// vacate of the same spot.
type ParkingService struct {
	spotRepo    repository.SpotRepository
	historyRepo repository.HistoryRepository
	notifier    NotificationSink
	fares       FareCalculator
	ids         *snowflake.Node
	floors      []string
	currency    string
	now         func() time.Time

	mu sync.Mutex
}

func NewParkingService(
	spotRepo repository.SpotRepository,
	historyRepo repository.HistoryRepository,
	notifier NotificationSink,
	fares FareCalculator,
	ids *snowflake.Node,
	floors []string,
	currencyPrefix string,
) *ParkingService {
	return &ParkingService{
		spotRepo:    spotRepo,
		historyRepo: historyRepo,
		notifier:    notifier,
		fares:       fares,
		ids:         ids,
		floors:      append([]string(nil), floors...),
		currency:    currencyPrefix,
		now:         time.Now,
	}
}

// --- Spots ---

func (s *ParkingService) Floors() []string {
	return append([]string(nil), s.floors...)
}

func (s *ParkingService) GetSpot(ctx context.Context, spotID string) (*domain.Spot, error) {
	return s.spotRepo.FindByID(ctx, spotID)
}

func (s *ParkingService) ListSpots(ctx context.Context) ([]domain.Spot, error) {
	return s.spotRepo.FindAll(ctx)
}

// ListByFloor returns the floor's spots in registry order.
func (s *ParkingService) ListByFloor(ctx context.Context, floor string) ([]domain.Spot, error) {
	return s.spotRepo.FindByFloor(ctx, floor)
}

func (s *ParkingService) FloorSummaries(ctx context.Context) ([]domain.FloorSummary, error) {
	summaries := make([]domain.FloorSummary, 0, len(s.floors))
	for _, floor := range s.floors {
		spots, err := s.spotRepo.FindByFloor(ctx, floor)
		if err != nil {
			return nil, fmt.Errorf("failed to list spots of floor %s: %w", floor, err)
		}
		summary := domain.FloorSummary{Floor: floor, Total: len(spots)}
		for _, spot := range spots {
			switch spot.Status {
			case domain.SpotAvailable:
				summary.Available++
			case domain.SpotOccupied:
				summary.Occupied++
			case domain.SpotReserved:
				summary.Reserved++
			case domain.SpotProblematic:
				summary.Problematic++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// --- Transitions ---

// OccupySpot parks a vehicle in an available spot. An empty vehicleType means
// the spot's own type.
func (s *ParkingService) OccupySpot(ctx context.Context, spotID, licensePlate string, vehicleType domain.VehicleType) (domain.TransitionResult, error) {
	licensePlate = strings.TrimSpace(licensePlate)

	s.mu.Lock()
	defer s.mu.Unlock()

	spot, err := s.spotRepo.FindByID(ctx, spotID)
	if err != nil {
		return noop(nil), s.lookupError(spotID, err)
	}
	if licensePlate == "" {
		return noop(spot), ErrMissingLicensePlate
	}
	if vehicleType != "" && vehicleType != spot.Type {
		return noop(spot), fmt.Errorf("%w: spot %s takes %s, got %s", ErrVehicleTypeMismatch, spotID, spot.Type, vehicleType)
	}
	if spot.Status != domain.SpotAvailable {
		log.Printf("Service: spot %s is %s, cannot park vehicle %s", spotID, spot.Status, licensePlate)
		return noop(spot), fmt.Errorf("%w: spot %s is %s", repository.ErrInvalidTransition, spotID, spot.Status)
	}

	now := s.now()
	spot.Status = domain.SpotOccupied
	spot.Occupant = &domain.Occupant{LicensePlate: licensePlate, EntryTime: now}
	spot.LastStatusUpdateSource = "occupy"
	spot.UpdatedAt = null.TimeFrom(now)

	updated, err := s.spotRepo.Update(ctx, spot)
	if err != nil {
		return noop(nil), fmt.Errorf("failed to update spot %s: %w", spotID, err)
	}
	log.Printf("Service: vehicle %s parked at spot %s", licensePlate, spotID)

	s.emit(ctx, domain.NotificationEntry, "Vehicle %s parked at spot %s", licensePlate, spotID)
	return domain.TransitionResult{Outcome: domain.OutcomeApplied, Spot: updated}, nil
}

// VacateSpot ends the session in an occupied spot: the fare is computed, a
// history record is appended, and the spot becomes available again.
func (s *ParkingService) VacateSpot(ctx context.Context, spotID string) (domain.TransitionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spot, err := s.spotRepo.FindByID(ctx, spotID)
	if err != nil {
		return noop(nil), s.lookupError(spotID, err)
	}
	if spot.Status != domain.SpotOccupied || spot.Occupant == nil {
		return noop(spot), fmt.Errorf("%w: spot %s has no vehicle", repository.ErrInvalidTransition, spotID)
	}

	occupant := *spot.Occupant
	exitTime := s.now()
	if exitTime.Before(occupant.EntryTime) {
		log.Printf("Service: exit time %v is before entry time %v for spot %s, using entry time", exitTime, occupant.EntryTime, spotID)
		exitTime = occupant.EntryTime
	}

	record := &domain.HistoryRecord{
		ID:           s.ids.Generate(),
		SpotID:       spot.ID,
		LicensePlate: occupant.LicensePlate,
		VehicleType:  spot.Type,
		EntryTime:    occupant.EntryTime,
		ExitTime:     exitTime,
		Fare:         s.fares.Compute(occupant.EntryTime, exitTime, spot.Type),
	}
	if err := s.historyRepo.Append(ctx, record); err != nil {
		return noop(spot), fmt.Errorf("failed to append history record: %w", err)
	}

	spot.Status = domain.SpotAvailable
	spot.Occupant = nil
	spot.LastStatusUpdateSource = "vacate"
	spot.UpdatedAt = null.TimeFrom(exitTime)

	updated, err := s.spotRepo.Update(ctx, spot)
	if err != nil {
		return noop(nil), fmt.Errorf("failed to update spot %s: %w", spotID, err)
	}
	log.Printf("Service: vehicle %s left spot %s after %v, fare %d", record.LicensePlate, spotID, record.Duration().Round(time.Second), record.Fare)

	s.emit(ctx, domain.NotificationExit, "Vehicle %s left spot %s. Fare: %s %d", record.LicensePlate, spotID, s.currency, record.Fare)
	return domain.TransitionResult{Outcome: domain.OutcomeApplied, Spot: updated, Record: record}, nil
}

// ReserveSpot is refused while the spot is occupied so the occupant is never
// left attached to a non-occupied spot.
func (s *ParkingService) ReserveSpot(ctx context.Context, spotID string) (domain.TransitionResult, error) {
	return s.setStatus(ctx, spotID, domain.SpotReserved, "reserve", notOccupied, "Spot %s reserved")
}

// MarkProblematic follows the same rule as ReserveSpot.
func (s *ParkingService) MarkProblematic(ctx context.Context, spotID string) (domain.TransitionResult, error) {
	return s.setStatus(ctx, spotID, domain.SpotProblematic, "mark_problematic", notOccupied, "Spot %s marked as problematic")
}

// ReleaseSpot returns a reserved or problematic spot to service.
func (s *ParkingService) ReleaseSpot(ctx context.Context, spotID string) (domain.TransitionResult, error) {
	return s.setStatus(ctx, spotID, domain.SpotAvailable, "release", func(st domain.SpotStatus) bool {
		return st == domain.SpotReserved || st == domain.SpotProblematic
	}, "Spot %s is available again")
}

func notOccupied(st domain.SpotStatus) bool {
	return st != domain.SpotOccupied
}

func (s *ParkingService) setStatus(ctx context.Context, spotID string, target domain.SpotStatus, source string,
	allowed func(domain.SpotStatus) bool, message string) (domain.TransitionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spot, err := s.spotRepo.FindByID(ctx, spotID)
	if err != nil {
		return noop(nil), s.lookupError(spotID, err)
	}
	if !allowed(spot.Status) {
		log.Printf("Service: spot %s is %s, '%s' not allowed", spotID, spot.Status, source)
		return noop(spot), fmt.Errorf("%w: cannot %s spot %s while %s", repository.ErrInvalidTransition, source, spotID, spot.Status)
	}

	spot.Status = target
	spot.Occupant = nil
	spot.LastStatusUpdateSource = source
	spot.UpdatedAt = null.TimeFrom(s.now())

	updated, err := s.spotRepo.Update(ctx, spot)
	if err != nil {
		return noop(nil), fmt.Errorf("failed to update spot %s: %w", spotID, err)
	}
	log.Printf("Service: spot %s is now %s", spotID, target)

	s.emit(ctx, domain.NotificationSystem, message, spotID)
	return domain.TransitionResult{Outcome: domain.OutcomeApplied, Spot: updated}, nil
}

// --- History and statistics ---

// History returns ledger records (newest first) matching the filter.
// Date compares against the entry day in the service's local time.
func (s *ParkingService) History(ctx context.Context, filter domain.HistoryFilterDTO) ([]domain.HistoryRecord, error) {
	var date string
	if filter.Date != nil && *filter.Date != "" {
		if _, err := time.Parse(historyDateLayout, *filter.Date); err != nil {
			return nil, fmt.Errorf("%w: date '%s' must be YYYY-MM-DD", ErrInvalidFilter, *filter.Date)
		}
		date = *filter.Date
	}
	var vehicleType domain.VehicleType
	if filter.VehicleType != nil && *filter.VehicleType != "" && *filter.VehicleType != "all" {
		vehicleType = domain.VehicleType(*filter.VehicleType)
		if !vehicleType.Valid() {
			return nil, fmt.Errorf("%w: unknown vehicle type '%s'", ErrInvalidFilter, *filter.VehicleType)
		}
	}

	records, err := s.historyRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if date == "" && vehicleType == "" {
		return records, nil
	}

	loc := s.now().Location()
	filtered := []domain.HistoryRecord{}
	for _, r := range records {
		if date != "" && r.EntryTime.In(loc).Format(historyDateLayout) != date {
			continue
		}
		if vehicleType != "" && r.VehicleType != vehicleType {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

func (s *ParkingService) Statistics(ctx context.Context) (domain.Statistics, error) {
	records, err := s.historyRepo.All(ctx)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("failed to read history: %w", err)
	}
	return ComputeStatistics(records, s.now()), nil
}

// --- helpers ---

func noop(spot *domain.Spot) domain.TransitionResult {
	return domain.TransitionResult{Outcome: domain.OutcomeNoop, Spot: spot}
}

func (s *ParkingService) lookupError(spotID string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		log.Printf("Service: spot '%s' not found", spotID)
		return fmt.Errorf("%w: spot '%s'", repository.ErrNotFound, spotID)
	}
	return fmt.Errorf("failed to find spot %s: %w", spotID, err)
}

// emit never fails the transition; the state change has already happened.
func (s *ParkingService) emit(ctx context.Context, kind domain.NotificationKind, format string, args ...any) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Record(ctx, fmt.Sprintf(format, args...), kind); err != nil {
		log.Printf("Service: failed to record %s notification: %v", kind, err)
	}
}
