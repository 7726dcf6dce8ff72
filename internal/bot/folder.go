package bot

import "github.com/lox/holdemcore/internal/game"

// Folder never puts chips in voluntarily. Useful as a seat filler and as
// the baseline every other strategy should beat.
type Folder struct{}

func (Folder) Name() string { return "folder" }

func (Folder) Act(s Situation) (game.Action, int) { return checkFold(s) }
