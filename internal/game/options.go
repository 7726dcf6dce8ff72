package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdemcore/internal/randutil"
	"github.com/lox/holdemcore/poker"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithBlinds sets the small and big blind. Defaults are 5 and 10.
func WithBlinds(small, big int) Option {
	return func(e *Engine) {
		e.smallBlind = small
		e.bigBlind = big
	}
}

// WithSeats sets the number of seats at the table. Default is 9.
func WithSeats(n int) Option {
	return func(e *Engine) {
		e.numSeats = n
	}
}

// WithRand supplies the random source used to shuffle each hand's deck.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithSeed is shorthand for WithRand(randutil.New(seed)).
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = randutil.New(seed)
	}
}

// WithLogger sets the engine's logger. Without it the engine logs nothing.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDeck deals every hand from deck instead of a fresh shuffle. Tests use
// it with poker.NewStackedDeck to rig exact boards.
func WithDeck(deck *poker.Deck) Option {
	return func(e *Engine) {
		e.fixedDeck = deck
	}
}

// WithEventBus replaces the engine's event bus, letting several consumers
// share one subscription point.
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}
