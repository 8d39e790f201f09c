package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository"
)

var (
	ErrSetTypeMismatch = errors.New("set type does not match the equipment type")
	ErrNoSets          = errors.New("a workout needs at least one complete set")
	ErrSetIndex        = errors.New("set index out of range")
)

// Set entry kinds.
const (
	EntryStrength   = "strength"
	EntryUnilateral = "unilateral"
	EntryCardio     = "cardio"
)

// SetEntry is one "Add Set" submission of the workout form.
type SetEntry struct {
	Kind        string `json:"kind"`
	Weight      string `json:"weight,omitempty"`
	Reps        string `json:"reps,omitempty"`
	LeftWeight  string `json:"leftWeight,omitempty"`
	LeftReps    string `json:"leftReps,omitempty"`
	RightWeight string `json:"rightWeight,omitempty"`
	RightReps   string `json:"rightReps,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Distance    string `json:"distance,omitempty"`
}

// SetBuilder collects the sets of one session on one machine. Incomplete
// input is ignored, as the form ignores an "Add Set" with empty fields.
type SetBuilder struct {
	equipmentType domain.EquipmentType
	sets          []domain.SetData
}

func NewSetBuilder(equipmentType domain.EquipmentType) *SetBuilder {
	if equipmentType == "" {
		equipmentType = domain.EquipmentStrength
	}
	return &SetBuilder{equipmentType: equipmentType}
}

func (b *SetBuilder) AddStrength(weight, reps string) error {
	if b.equipmentType != domain.EquipmentStrength {
		return ErrSetTypeMismatch
	}
	weight, reps = strings.TrimSpace(weight), strings.TrimSpace(reps)
	if weight != "" && reps != "" {
		b.sets = append(b.sets, domain.SetData{Weight: weight, Reps: reps})
	}
	return nil
}

// AddUnilateral adds a Left and/or a Right set; a side is added only when
// both its weight and reps are set.
func (b *SetBuilder) AddUnilateral(leftWeight, leftReps, rightWeight, rightReps string) error {
	if b.equipmentType != domain.EquipmentStrength {
		return ErrSetTypeMismatch
	}
	sides := []struct {
		side         domain.Side
		weight, reps string
	}{
		{domain.SideLeft, leftWeight, leftReps},
		{domain.SideRight, rightWeight, rightReps},
	}
	for _, s := range sides {
		w, r := strings.TrimSpace(s.weight), strings.TrimSpace(s.reps)
		if w != "" && r != "" {
			b.sets = append(b.sets, domain.SetData{Weight: w, Reps: r, Side: s.side})
		}
	}
	return nil
}

func (b *SetBuilder) AddCardio(duration, distance string) error {
	if b.equipmentType != domain.EquipmentCardio {
		return ErrSetTypeMismatch
	}
	duration, distance = strings.TrimSpace(duration), strings.TrimSpace(distance)
	if duration != "" && distance != "" {
		b.sets = append(b.sets, domain.SetData{Duration: duration, Distance: distance})
	}
	return nil
}

// Add dispatches a form entry to the matching Add method.
func (b *SetBuilder) Add(e SetEntry) error {
	kind := e.Kind
	if kind == "" {
		kind = string(b.equipmentType)
	}
	switch kind {
	case EntryStrength:
		return b.AddStrength(e.Weight, e.Reps)
	case EntryUnilateral:
		return b.AddUnilateral(e.LeftWeight, e.LeftReps, e.RightWeight, e.RightReps)
	case EntryCardio:
		return b.AddCardio(e.Duration, e.Distance)
	default:
		return fmt.Errorf("%w: unknown set kind %q", ErrValidationFailed, e.Kind)
	}
}

func (b *SetBuilder) Remove(index int) error {
	if index < 0 || index >= len(b.sets) {
		return ErrSetIndex
	}
	b.sets = append(b.sets[:index], b.sets[index+1:]...)
	return nil
}

func (b *SetBuilder) Clear() { b.sets = nil }

// Sets returns a copy of the collected sets.
func (b *SetBuilder) Sets() []domain.SetData {
	return append([]domain.SetData(nil), b.sets...)
}

// MachineHistory is one user's log on one machine.
type MachineHistory struct {
	Sessions    []domain.WorkoutSession // newest first
	LastSession *domain.WorkoutSession
}

type WorkoutService interface {
	SaveWorkoutSession(ctx context.Context, userID, equipmentID string, entries []SetEntry) (*domain.WorkoutSession, error)
	ListWorkoutHistory(ctx context.Context, userID string) ([]domain.WorkoutSession, error)
	MachineHistory(ctx context.Context, userID, equipmentID string) (*MachineHistory, error)
}

type workoutService struct {
	historyRepo   repository.WorkoutHistoryRepository
	equipmentRepo repository.EquipmentRepository
	now           func() time.Time
}

func NewWorkoutService(historyRepo repository.WorkoutHistoryRepository, equipmentRepo repository.EquipmentRepository) WorkoutService {
	return &workoutService{
		historyRepo:   historyRepo,
		equipmentRepo: equipmentRepo,
		now:           time.Now,
	}
}

func (s *workoutService) SaveWorkoutSession(ctx context.Context, userID, equipmentID string, entries []SetEntry) (*domain.WorkoutSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", ErrValidationFailed)
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}

	builder := NewSetBuilder(equipment.Type)
	for _, e := range entries {
		if err := builder.Add(e); err != nil {
			return nil, err
		}
	}
	sets := builder.Sets()
	if len(sets) == 0 {
		return nil, ErrNoSets
	}

	session := &domain.WorkoutSession{
		UserID:        userID,
		EquipmentID:   equipment.ID,
		EquipmentName: equipment.Name,
		CreatedAt:     s.now().UTC().Format(domain.TimestampLayout),
		Sets:          sets,
	}
	id, err := s.historyRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	return session, nil
}

func (s *workoutService) ListWorkoutHistory(ctx context.Context, userID string) ([]domain.WorkoutSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", ErrValidationFailed)
	}
	return s.historyRepo.ListByUser(ctx, userID)
}

func (s *workoutService) MachineHistory(ctx context.Context, userID, equipmentID string) (*MachineHistory, error) {
	all, err := s.ListWorkoutHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	h := &MachineHistory{Sessions: []domain.WorkoutSession{}}
	for _, session := range all {
		if session.EquipmentID == equipmentID {
			h.Sessions = append(h.Sessions, session)
		}
	}
	if len(h.Sessions) > 0 {
		h.LastSession = &h.Sessions[0]
	}
	return h, nil
}
