package bot

import "github.com/lox/holdemcore/internal/game"

// Caller pays whatever the table asks and never raises, so every hand it
// plays goes to showdown unless someone else ends it.
type Caller struct{}

func (Caller) Name() string { return "caller" }

func (Caller) Act(s Situation) (game.Action, int) { return passive(s) }
