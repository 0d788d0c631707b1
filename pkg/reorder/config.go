package reorder

import (
	"fmt"
	"time"
)

// Default engine settings
const (
	DefaultRowHeight      = 50
	DefaultLongPress      = 500 * time.Millisecond
	DefaultSettleDuration = 350 * time.Millisecond
	DefaultMoveTolerance  = 10
)

// Config holds the engine settings shared by every row of a list
type Config struct {
	RowHeight      float64       // uniform height of every row
	LongPress      time.Duration // hold time before a row arms
	MoveTolerance  float64       // movement allowed while holding
	SettleDuration time.Duration // settle animation length
	Easing         Easing        // settle curve (nil = EaseInOut)
	EdgeInset      float64       // shrinks the auto-scroll window on both edges
}

// DefaultConfig returns the stock settings
func DefaultConfig() Config {
	return Config{
		RowHeight:      DefaultRowHeight,
		LongPress:      DefaultLongPress,
		MoveTolerance:  DefaultMoveTolerance,
		SettleDuration: DefaultSettleDuration,
		Easing:         EaseInOut,
	}
}

// Validate checks the settings
func (c Config) Validate() error {
	if c.RowHeight <= 0 {
		return fmt.Errorf("row height must be positive, got %v", c.RowHeight)
	}
	if c.LongPress < 0 {
		return fmt.Errorf("long press duration must not be negative, got %v", c.LongPress)
	}
	if c.SettleDuration < 0 {
		return fmt.Errorf("settle duration must not be negative, got %v", c.SettleDuration)
	}
	if c.MoveTolerance < 0 || c.EdgeInset < 0 {
		return fmt.Errorf("move tolerance and edge inset must not be negative")
	}
	return nil
}

func (c Config) easing() Easing {
	if c.Easing == nil {
		return EaseInOut
	}
	return c.Easing
}
