package gameplay

import (
	"strconv"
	"strings"
)

// CollectibleKind identifies an object-layer pickup.
type CollectibleKind string

const (
	KindCoin  CollectibleKind = "coin"
	KindKey   CollectibleKind = "key"
	KindChest CollectibleKind = "chest"
)

// ParseCollectibleKind maps an object name from level data to a kind.
func ParseCollectibleKind(name string) (CollectibleKind, bool) {
	switch CollectibleKind(strings.ToLower(strings.TrimSpace(name))) {
	case KindCoin:
		return KindCoin, true
	case KindKey:
		return KindKey, true
	case KindChest:
		return KindChest, true
	default:
		return "", false
	}
}

// Sound effect names emitted by collectible rules.
const (
	SoundCoin  = "coin"
	SoundKey   = "key"
	SoundChest = "chest"
	SoundJump  = "jump"
)

// Scoring holds the point values and the special win threshold.
type Scoring struct {
	CoinPoints          int
	ChestPoints         int
	SpecialWinThreshold int
}

func DefaultScoring() Scoring {
	return Scoring{CoinPoints: 10, ChestPoints: 1000, SpecialWinThreshold: 1200}
}

// Collectible is one placed pickup instance.
type Collectible struct {
	Kind      CollectibleKind
	Collected bool
}

// Effect describes what the engine should do after an overlap was
// resolved. The zero value means nothing happened.
type Effect struct {
	Applied      bool
	Locked       bool
	Destroy      bool
	Burst        bool
	Sound        string
	ScoreChanged bool
}

// Rule pairs a predicate with the effect applied when it holds.
type Rule struct {
	When func(s *Session) bool
	Then func(s *Session) Effect
}

// Session is the per-attempt mutable state: score and inventory. A restart
// creates a new Session.
type Session struct {
	Score   int
	HasKey  bool
	Scoring Scoring

	rules map[CollectibleKind]Rule
}

func NewSession(sc Scoring) *Session {
	s := &Session{Scoring: sc}
	s.rules = Rules(sc)
	return s
}

// Rules builds the collectible rule table for a scoring configuration.
func Rules(sc Scoring) map[CollectibleKind]Rule {
	return map[CollectibleKind]Rule{
		KindCoin: {
			Then: func(s *Session) Effect {
				s.Score += sc.CoinPoints
				return Effect{Applied: true, Destroy: true, Burst: true, Sound: SoundCoin, ScoreChanged: true}
			},
		},
		KindKey: {
			Then: func(s *Session) Effect {
				s.HasKey = true
				return Effect{Applied: true, Destroy: true, Sound: SoundKey}
			},
		},
		KindChest: {
			When: func(s *Session) bool { return s.HasKey },
			Then: func(s *Session) Effect {
				s.Score += sc.ChestPoints
				return Effect{Applied: true, Destroy: true, Sound: SoundChest, ScoreChanged: true}
			},
		},
	}
}

// Collect resolves an overlap between the player and c. A collectible that
// was already taken yields the zero Effect, so repeated overlaps are no-ops.
func (s *Session) Collect(c *Collectible) Effect {
	if s == nil || c == nil || c.Collected {
		return Effect{}
	}
	if s.rules == nil {
		s.rules = Rules(s.Scoring)
	}
	rule, ok := s.rules[c.Kind]
	if !ok || rule.Then == nil {
		return Effect{}
	}
	if rule.When != nil && !rule.When(s) {
		return Effect{Locked: true}
	}
	eff := rule.Then(s)
	if eff.Destroy {
		c.Collected = true
	}
	return eff
}

// ScoreText is the HUD label for a score.
func ScoreText(score int) string {
	return "Score: " + strconv.Itoa(score)
}
