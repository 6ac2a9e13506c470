// Package game implements the Oicho-Kabu rules engine.
//
// The main type is Engine, which owns the player's chip balance and drives a
// round through its phases: betting, dealing, the player's turn, the dealer's
// fixed draw policy and settlement.
//
// # Basic Usage
//
// Create an engine and play a round:
//
//	e := game.NewEngine(game.WithChips(1000))
//	snap, err := e.StartRound(100)
//	if errors.Is(err, game.ErrInsufficientFunds) {
//	    // the session is over
//	}
//	snap, _ = e.Hit()   // optional third card
//	snap, _ = e.Stand() // dealer plays and the round settles
//	fmt.Println(snap.Result, snap.Chips)
//
// Every action returns an immutable Snapshot. Dealer cards other than the
// first are concealed in snapshots until the round is settled.
//
// # Deterministic Testing
//
// Inject a seeded RNG, or a deck source that returns stacked decks:
//
//	e := game.NewEngine(game.WithRNG(randutil.New(42)))
//
//	e := game.NewEngine(game.WithDeckSource(func() *deck.Deck {
//	    return deck.Stacked(deck.MustParseCards("3s 5h 7d 8c")...)
//	}))
//
// # Scoring
//
// Evaluate returns a Score whose integer ordering is the hand ranking:
// Arashi (three of a rank, 100+rank) beats Shippin (1 and 4, 50), which beats
// Kuppin (1 and 9, 40), which beats any ordinary total modulo 10.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Hosts drive it from a single
// goroutine; the simulator gives every session its own Engine.
package game
