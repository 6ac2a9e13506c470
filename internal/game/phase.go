package game

// Phase is the stage a round is in
type Phase int

const (
	NotStarted Phase = iota
	Betting
	PlayerTurn
	DealerTurn
	Settled
	GameOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "Not Started"
	case Betting:
		return "Betting"
	case PlayerTurn:
		return "Player Turn"
	case DealerTurn:
		return "Dealer Turn"
	case Settled:
		return "Settled"
	case GameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

// Result is the outcome of a round from the player's side
type Result int

const (
	NoResult Result = iota
	Win
	Lose
	Tie
)

// String returns the string representation of a result
func (r Result) String() string {
	switch r {
	case NoResult:
		return "None"
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	case Tie:
		return "Tie"
	default:
		return "Unknown"
	}
}

// resultOf compares the two final scores
func resultOf(player, dealer Score) Result {
	switch Compare(player, dealer) {
	case 1:
		return Win
	case -1:
		return Lose
	default:
		return Tie
	}
}
