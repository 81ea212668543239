package queue

import (
	"fmt"
	"strings"
	"testing"

	"github.com/artelbilliards/kolkhoz/internal/models"
	"github.com/stretchr/testify/suite"
)

type GeneratorTestSuite struct {
	suite.Suite
	gen Generator
}

func (s *GeneratorTestSuite) SetupTest() {
	s.gen = New(&Config{Seed: 42})
}

func TestGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func (s *GeneratorTestSuite) makeRoster(n int) []*models.Participant {
	roster := make([]*models.Participant, n)
	for i := 0; i < n; i++ {
		roster[i] = &models.Participant{
			ID:          fmt.Sprintf("participant-%d", i+1),
			DisplayName: fmt.Sprintf("Player %d", i+1),
			Active:      true,
		}
	}
	return roster
}

func (s *GeneratorTestSuite) assertPermutation(roster, order []*models.Participant) {
	s.Require().Len(order, len(roster))

	want := make(map[string]int, len(roster))
	for _, p := range roster {
		want[p.ID]++
	}
	for _, p := range order {
		want[p.ID]--
	}
	for id, count := range want {
		s.Equal(0, count, "participant %s missing or duplicated", id)
	}
}

func orderIDs(order []*models.Participant) string {
	ids := make([]string, len(order))
	for i, p := range order {
		ids[i] = p.ID
	}
	return strings.Join(ids, "|")
}

func (s *GeneratorTestSuite) TestAlwaysRandomIsPermutation() {
	roster := s.makeRoster(5)

	for i := 0; i < 50; i++ {
		out, err := s.gen.Generate(&GenerateInput{
			Policy:       models.QueuePolicyAlwaysRandom,
			Participants: roster,
		})
		s.Require().NoError(err)
		s.assertPermutation(roster, out.Order)
	}
}

func (s *GeneratorTestSuite) TestAlwaysRandomDegenerateRosters() {
	out, err := s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicyAlwaysRandom,
		Participants: nil,
	})
	s.Require().NoError(err)
	s.Empty(out.Order)

	roster := s.makeRoster(1)
	out, err = s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicyAlwaysRandom,
		Participants: roster,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Order, 1)
	s.Equal(roster[0].ID, out.Order[0].ID)
}

func (s *GeneratorTestSuite) TestDuplicateIDsRejected() {
	roster := s.makeRoster(3)
	roster[2].ID = roster[0].ID

	_, err := s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicyAlwaysRandom,
		Participants: roster,
	})
	s.Require().ErrorIs(err, ErrInvalidRoster)
}

func (s *GeneratorTestSuite) TestUnknownPolicyRejected() {
	_, err := s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicy("round_robin"),
		Participants: s.makeRoster(3),
	})
	s.Require().ErrorIs(err, ErrUnknownPolicy)
}

func (s *GeneratorTestSuite) TestManualExplicitOrder() {
	roster := s.makeRoster(3)

	out, err := s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicyManual,
		Participants: roster,
		CustomOrder:  []string{"participant-2", "participant-1"},
	})
	s.Require().NoError(err)

	// Omitted members are appended in original input order.
	s.Equal("participant-2|participant-1|participant-3", orderIDs(out.Order))
}

func (s *GeneratorTestSuite) TestManualEmptyOrderKeepsInput() {
	roster := s.makeRoster(4)

	out, err := s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicyManual,
		Participants: roster,
	})
	s.Require().NoError(err)
	s.Equal(orderIDs(roster), orderIDs(out.Order))
}

func (s *GeneratorTestSuite) TestManualIgnoresUnknownIDs() {
	roster := s.makeRoster(2)

	out, err := s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicyManual,
		Participants: roster,
		CustomOrder:  []string{"stranger", "participant-2", "participant-2"},
	})
	s.Require().NoError(err)
	s.Equal("participant-2|participant-1", orderIDs(out.Order))
}

func (s *GeneratorTestSuite) TestNoRepeatCoversFullCycle() {
	roster := s.makeRoster(3)

	var history [][]string
	drawn := make(map[string]struct{})

	// 3! draws must produce six distinct orderings.
	for i := 0; i < 6; i++ {
		out, err := s.gen.Generate(&GenerateInput{
			Policy:       models.QueuePolicyRandomNoRepeat,
			Participants: roster,
			History:      history,
		})
		s.Require().NoError(err)
		s.assertPermutation(roster, out.Order)

		key := orderIDs(out.Order)
		_, repeated := drawn[key]
		s.False(repeated, "draw %d repeated ordering %s", i+1, key)
		drawn[key] = struct{}{}

		ids := make([]string, len(out.Order))
		for j, p := range out.Order {
			ids[j] = p.ID
		}
		history = append(history, ids)
	}

	s.Len(drawn, 6)

	// The seventh draw starts a new cycle and may repeat any ordering.
	out, err := s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicyRandomNoRepeat,
		Participants: roster,
		History:      history,
	})
	s.Require().NoError(err)
	s.assertPermutation(roster, out.Order)
	s.Contains(drawn, orderIDs(out.Order))
}

func (s *GeneratorTestSuite) TestNoRepeatTwoPlayersAlternate() {
	roster := s.makeRoster(2)

	out, err := s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicyRandomNoRepeat,
		Participants: roster,
		History:      [][]string{{"participant-1", "participant-2"}},
	})
	s.Require().NoError(err)
	s.Equal("participant-2|participant-1", orderIDs(out.Order))
}

func (s *GeneratorTestSuite) TestNoRepeatTrivialRoster() {
	roster := s.makeRoster(1)

	out, err := s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicyRandomNoRepeat,
		Participants: roster,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Order, 1)
	s.Equal("participant-1", out.Order[0].ID)
}

func (s *GeneratorTestSuite) TestNoRepeatLargeRosterAvoidsHistory() {
	roster := s.makeRoster(9)

	previous := make([]string, len(roster))
	for i, p := range roster {
		previous[i] = p.ID
	}

	out, err := s.gen.Generate(&GenerateInput{
		Policy:       models.QueuePolicyRandomNoRepeat,
		Participants: roster,
		History:      [][]string{previous},
	})
	s.Require().NoError(err)
	s.assertPermutation(roster, out.Order)
	s.NotEqual(strings.Join(previous, "|"), orderIDs(out.Order))
}
