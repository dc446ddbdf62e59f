package bot

import (
	"fmt"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelDealer:
		return &DealerBrain{}, nil
	case BotLevelBasic:
		return &BasicBrain{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// LevelFromString maps a config difficulty string onto a brain level.
func LevelFromString(difficulty string) BotLevel {
	switch difficulty {
	case "basic", "hard":
		return BotLevelBasic
	default:
		return BotLevelDealer
	}
}
