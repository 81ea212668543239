package settlement

import (
	"errors"
	"math"
	"sort"

	"github.com/artelbilliards/kolkhoz/internal/models"
)

// PaymentDirection controls how point totals turn into money transfers
type PaymentDirection string

const (
	// DirectionPreviousPaysNext is the kolkhoz chain: the shooter before
	// you in the turn order pays for the balls you pot
	DirectionPreviousPaysNext PaymentDirection = "previous_pays_next"

	// DirectionNone settles points only, with no money movement
	DirectionNone PaymentDirection = "none"
)

// ErrEmptyTurnOrder is returned when a game is settled without a turn order
var ErrEmptyTurnOrder = errors.New("turn order cannot be empty")

// Config holds settlement parameters. The values come from the session's
// rule template; the calculator treats them opaquely.
type Config struct {
	// PointValueMinorUnits is the monetary value of one point
	PointValueMinorUnits int64

	// PaymentDirection selects the transfer scheme
	PaymentDirection PaymentDirection
}

// Result is the settled outcome of a game
type Result struct {
	// PerParticipant holds one entry per turn order slot, in order
	PerParticipant []*models.GameResult

	// WinnerID is the participant with the highest point total
	WinnerID string
}

// Calculator derives per-participant outcomes from a game's event log
type Calculator struct {
	config *Config
}

// New creates a new settlement calculator
func New(cfg *Config) *Calculator {
	if cfg == nil {
		cfg = &Config{
			PointValueMinorUnits: 5000,
			PaymentDirection:     DirectionPreviousPaysNext,
		}
	}

	return &Calculator{config: cfg}
}

// Compute folds the non-deleted events in sequence order into point,
// ball, and money totals for every participant in the turn order.
//
// With the previous_pays_next direction each participant earns
// points × pointValue from the shooter before them and pays for the
// shooter after them, so the game always settles to zero.
func (c *Calculator) Compute(turnOrder []string, events []*models.Event) (*Result, error) {
	if len(turnOrder) == 0 {
		return nil, ErrEmptyTurnOrder
	}

	position := make(map[string]int, len(turnOrder))
	for i, id := range turnOrder {
		position[id] = i
	}

	ordered := make([]*models.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SequenceNumber < ordered[j].SequenceNumber
	})

	points := make([]int, len(turnOrder))
	balls := make([]int, len(turnOrder))
	lastScoringSeq := make([]int, len(turnOrder))
	for i := range lastScoringSeq {
		lastScoringSeq[i] = math.MaxInt
	}

	for _, e := range ordered {
		if e.Deleted {
			continue
		}
		idx, ok := position[e.ParticipantID]
		if !ok {
			continue
		}

		switch e.Type {
		case models.EventTypeBallPotted:
			points[idx] += e.Points
			balls[idx]++
			lastScoringSeq[idx] = e.SequenceNumber
		case models.EventTypeFoul:
			points[idx] -= e.Penalty
		}
	}

	results := make([]*models.GameResult, len(turnOrder))
	for i, id := range turnOrder {
		r := &models.GameResult{
			ParticipantID: id,
			QueuePosition: i + 1,
			BallsPotted:   balls[i],
			PointsScored:  points[i],
		}

		if c.config.PaymentDirection == DirectionPreviousPaysNext && len(turnOrder) > 1 {
			next := (i + 1) % len(turnOrder)
			r.AmountEarned = int64(points[i]) * c.config.PointValueMinorUnits
			r.AmountPaid = int64(points[next]) * c.config.PointValueMinorUnits
			r.NetAmount = r.AmountEarned - r.AmountPaid
		}

		results[i] = r
	}

	return &Result{
		PerParticipant: results,
		WinnerID:       turnOrder[winnerIndex(points, lastScoringSeq)],
	}, nil
}

// winnerIndex picks the highest point total. Ties go to the participant
// whose last scoring event carries the earlier sequence number; a
// participant who never scored loses the tie, and a tie among
// non-scorers goes to the earlier turn order slot.
func winnerIndex(points, lastScoringSeq []int) int {
	winner := 0
	for i := 1; i < len(points); i++ {
		if points[i] > points[winner] {
			winner = i
			continue
		}
		if points[i] == points[winner] && lastScoringSeq[i] < lastScoringSeq[winner] {
			winner = i
		}
	}
	return winner
}
