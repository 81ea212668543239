package game

// Error is a custom error type for session and game errors
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Define errors
const (
	// Not-found errors: a referential mismatch, always a caller bug or a
	// stale reference
	ErrSessionNotFound     Error = "session not found"
	ErrGameNotFound        Error = "game not found"
	ErrParticipantNotFound Error = "participant not found in session"
	ErrEventNotFound       Error = "event not found"
	ErrUnknownParticipant  Error = "participant is not part of the game"

	// Validation errors: bad input shape, rejected before any mutation
	ErrInvalidSessionName     Error = "session name cannot be empty"
	ErrInvalidMaxParticipants Error = "max participants out of range"
	ErrInvalidEvent           Error = "invalid event"
	ErrInvalidStatus          Error = "invalid session status"
	ErrEmptyRoster            Error = "turn order cannot be empty"
	ErrNoParticipants         Error = "session has no active participants"
	ErrInsufficientPlayers    Error = "at least two active participants are required"

	// State-conflict errors: the operation is disallowed in the current
	// lifecycle state and may succeed after it changes
	ErrSessionFull         Error = "session is at maximum capacity"
	ErrSessionActive       Error = "roster is locked while a game is active"
	ErrSessionLocked       Error = "settings are locked while a game is active"
	ErrSessionNotWaiting   Error = "session has already started"
	ErrSessionTerminal     Error = "session is already completed or cancelled"
	ErrGameInProgress      Error = "session already has an active game"
	ErrGameNotActive       Error = "game is not active"
	ErrCannotRemoveCreator Error = "session creator cannot be removed"
	ErrMaxBelowRoster      Error = "max participants cannot be below current roster size"

	// Construction errors
	ErrNilConfig        Error = "config cannot be nil"
	ErrNilSessionRepo   Error = "session repository cannot be nil"
	ErrNilGameRepo      Error = "game repository cannot be nil"
	ErrNilHistoryRepo   Error = "queue history repository cannot be nil"
	ErrNilGenerator     Error = "turn order generator cannot be nil"
	ErrNilCalculator    Error = "settlement calculator cannot be nil"
	ErrNilClock         Error = "clock cannot be nil"
	ErrNilUUIDGenerator Error = "UUID generator cannot be nil"
)
