package queue

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/artelbilliards/kolkhoz/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/artelbilliards/kolkhoz/internal/queue Generator

// Define errors
var (
	// ErrInvalidRoster is returned when the roster contains duplicate participant IDs
	ErrInvalidRoster = errors.New("roster contains duplicate participant ids")

	// ErrUnknownPolicy is returned for an unrecognized queue policy
	ErrUnknownPolicy = errors.New("unknown queue policy")
)

// maxEnumerationSize is the largest roster for which random_no_repeat
// enumerates all permutations (7! = 5040). Larger rosters fall back to
// rejection sampling against the recent history, which keeps the
// no-repeat window intact without materializing N! orderings.
const maxEnumerationSize = 7

// maxSampleAttempts bounds the rejection sampling loop for large rosters.
const maxSampleAttempts = 1000

// Generator produces a turn order for a set of participants
type Generator interface {
	// Generate returns the participants reordered according to the policy
	Generate(input *GenerateInput) (*GenerateOutput, error)
}

// GenerateInput contains parameters for generating a turn order
type GenerateInput struct {
	// Policy selects the ordering algorithm
	Policy models.QueuePolicy

	// Participants is the active roster, in session join order
	Participants []*models.Participant

	// History holds previously issued turn orders for the session,
	// oldest first. Only consulted by random_no_repeat.
	History [][]string

	// CustomOrder is the caller-supplied participant ID order.
	// Only consulted by manual.
	CustomOrder []string
}

// GenerateOutput contains the generated turn order
type GenerateOutput struct {
	// Order is a permutation of the input participants
	Order []*models.Participant
}

// Config for the turn order generator
type Config struct {
	// Optional seed for testing
	Seed int64
}

// generator implements the Generator interface
type generator struct {
	random *rand.Rand
}

// New creates a new turn order generator
func New(cfg *Config) *generator {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &generator{
		random: rand.New(source),
	}
}

// Generate returns the participants reordered according to the policy.
// It has no side effects; the caller is responsible for recording the
// result in the session's history when the policy requires one.
func (g *generator) Generate(input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := validateRoster(input.Participants); err != nil {
		return nil, err
	}

	var order []*models.Participant
	switch input.Policy {
	case models.QueuePolicyAlwaysRandom:
		order = g.alwaysRandom(input.Participants)
	case models.QueuePolicyRandomNoRepeat:
		order = g.randomNoRepeat(input.Participants, input.History)
	case models.QueuePolicyManual:
		order = manual(input.Participants, input.CustomOrder)
	default:
		return nil, ErrUnknownPolicy
	}

	return &GenerateOutput{Order: order}, nil
}

// validateRoster rejects rosters with duplicate participant IDs.
func validateRoster(participants []*models.Participant) error {
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if _, ok := seen[p.ID]; ok {
			return ErrInvalidRoster
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// alwaysRandom shuffles the roster uniformly with no memory of past draws.
func (g *generator) alwaysRandom(participants []*models.Participant) []*models.Participant {
	order := make([]*models.Participant, len(participants))
	copy(order, participants)
	g.random.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// manual places participants in the caller-supplied order. Participants
// absent from customOrder are appended afterward in original input order,
// and unknown IDs in customOrder are ignored, so the result is always a
// full permutation of the roster.
func manual(participants []*models.Participant, customOrder []string) []*models.Participant {
	if len(customOrder) == 0 {
		order := make([]*models.Participant, len(participants))
		copy(order, participants)
		return order
	}

	byID := make(map[string]*models.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	order := make([]*models.Participant, 0, len(participants))
	placed := make(map[string]struct{}, len(participants))
	for _, id := range customOrder {
		p, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		order = append(order, p)
		placed[id] = struct{}{}
	}

	for _, p := range participants {
		if _, ok := placed[p.ID]; !ok {
			order = append(order, p)
		}
	}

	return order
}

// randomNoRepeat draws a permutation that has not been issued within the
// current cycle. The exclusion window is the N! most recent history
// entries; once every permutation appears in the window the draw resets
// to the full permutation set and a new cycle begins.
func (g *generator) randomNoRepeat(participants []*models.Participant, history [][]string) []*models.Participant {
	n := len(participants)
	if n <= 1 {
		order := make([]*models.Participant, n)
		copy(order, participants)
		return order
	}

	if n > maxEnumerationSize {
		return g.sampleUnseen(participants, history)
	}

	window := factorial(n)
	recent := historyKeys(history, window)

	perms := permutations(n)
	available := make([][]int, 0, len(perms))
	for _, perm := range perms {
		if _, used := recent[permKey(participants, perm)]; !used {
			available = append(available, perm)
		}
	}

	// Cycle exhausted: every permutation has been issued, start over.
	if len(available) == 0 {
		available = perms
	}

	chosen := available[g.random.Intn(len(available))]
	order := make([]*models.Participant, n)
	for i, idx := range chosen {
		order[i] = participants[idx]
	}
	return order
}

// sampleUnseen shuffles until the result is not in the recorded history.
// For rosters past the enumeration limit N! dwarfs any practical history,
// so a colliding draw is retried and the no-repeat guarantee holds with
// overwhelming probability.
func (g *generator) sampleUnseen(participants []*models.Participant, history [][]string) []*models.Participant {
	seen := historyKeys(history, len(history))

	var order []*models.Participant
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		order = g.alwaysRandom(participants)
		if _, used := seen[orderKey(order)]; !used {
			return order
		}
	}
	return order
}

// historyKeys returns the most recent window entries as a lookup set.
func historyKeys(history [][]string, window int) map[string]struct{} {
	start := 0
	if len(history) > window {
		start = len(history) - window
	}
	keys := make(map[string]struct{}, len(history)-start)
	for _, ids := range history[start:] {
		keys[strings.Join(ids, "|")] = struct{}{}
	}
	return keys
}

func permKey(participants []*models.Participant, perm []int) string {
	ids := make([]string, len(perm))
	for i, idx := range perm {
		ids[i] = participants[idx].ID
	}
	return strings.Join(ids, "|")
}

func orderKey(order []*models.Participant) string {
	ids := make([]string, len(order))
	for i, p := range order {
		ids[i] = p.ID
	}
	return strings.Join(ids, "|")
}

// permutations enumerates all orderings of n indices.
func permutations(n int) [][]int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	var result [][]int
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			perm := make([]int, n)
			copy(perm, indices)
			result = append(result, perm)
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				indices[i], indices[k-1] = indices[k-1], indices[i]
			} else {
				indices[0], indices[k-1] = indices[k-1], indices[0]
			}
		}
	}
	generate(n)
	return result
}

func factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}
