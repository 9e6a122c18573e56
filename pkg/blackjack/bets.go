package blackjack

import "errors"

// Limits describes the table's bet constraints. Every accepted wager is a
// step multiple inside [MinBet, MaxBet].
type Limits struct {
	MinBet int64
	MaxBet int64
	Step   int64
}

// DefaultLimits returns the standard table limits.
func DefaultLimits() Limits {
	return Limits{
		MinBet: 100,
		MaxBet: 10000,
		Step:   100,
	}
}

// Validate rejects malformed limits before an engine is built around them.
func (l Limits) Validate() error {
	if l.Step <= 0 {
		return errors.New("bet step must be positive")
	}
	if l.MinBet < l.Step {
		return errors.New("minimum bet must be at least one step")
	}
	if l.MaxBet < l.MinBet {
		return errors.New("maximum bet must not be below minimum bet")
	}
	if l.MinBet%l.Step != 0 || l.MaxBet%l.Step != 0 {
		return errors.New("bet limits must be step multiples")
	}
	return nil
}

// ClampBet normalizes a requested wager against the limits and the
// available balance: round down to the nearest step multiple, clamp into
// [MinBet, MaxBet], then clamp down again to the largest step multiple
// the balance covers. Requests below the minimum are rejected outright;
// the return value is 0 whenever no legal bet can be placed.
func ClampBet(requested, balance int64, l Limits) int64 {
	if requested < 0 {
		return 0
	}

	bet := requested / l.Step * l.Step

	if bet < l.MinBet {
		return 0
	}
	if bet > l.MaxBet {
		bet = l.MaxBet
	}

	if bet > balance {
		bet = balance / l.Step * l.Step
	}
	if bet < l.MinBet {
		return 0
	}

	return bet
}
