package models

// GameResult holds one participant's settled outcome for a single game
type GameResult struct {
	// ParticipantID is the participant this result belongs to
	ParticipantID string

	// QueuePosition is the participant's 1-based slot in the game's turn order
	QueuePosition int

	// BallsPotted is the number of balls the participant potted
	BallsPotted int

	// PointsScored is the participant's point total after foul penalties
	PointsScored int

	// AmountEarned is what the previous shooter owes the participant,
	// in minor currency units
	AmountEarned int64

	// AmountPaid is what the participant owes the next shooter,
	// in minor currency units
	AmountPaid int64

	// NetAmount is AmountEarned minus AmountPaid
	NetAmount int64
}
