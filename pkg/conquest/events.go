package conquest

// EventKind discriminates the closed set of turn event types.
type EventKind string

const (
	EventCombat         EventKind = "combat"
	EventHyperspaceLoss EventKind = "hyperspace_loss"
	EventRebellion      EventKind = "rebellion"
	EventProduction     EventKind = "production"
	EventArrival        EventKind = "arrival"
)

// Event is a typed record of something that happened during a turn.
// Events describe state transitions; consuming or ignoring them never
// affects the game state itself.
type Event interface {
	Kind() EventKind
}

// CombatOutcome says which side of a battle survived.
type CombatOutcome string

const (
	OutcomeAttacker CombatOutcome = "attacker"
	OutcomeDefender CombatOutcome = "defender"
	OutcomeMutual   CombatOutcome = "mutual"
)

// CombatEvent records one pairwise battle at a star. A three-party
// arrival emits one event per pairwise round.
type CombatEvent struct {
	Star              StarID        `json:"star_id"`
	Attacker          Owner         `json:"attacker"`
	Defender          Owner         `json:"defender"`
	AttackerShips     int           `json:"attacker_ships"`
	DefenderShips     int           `json:"defender_ships"`
	Winner            CombatOutcome `json:"winner"`
	AttackerSurvivors int           `json:"attacker_survivors"`
	DefenderSurvivors int           `json:"defender_survivors"`
	HomeCapture       bool          `json:"was_home_capture"`
}

func (CombatEvent) Kind() EventKind { return EventCombat }

// HyperspaceLossEvent records a fleet destroyed in transit.
type HyperspaceLossEvent struct {
	FleetID int    `json:"fleet_id"`
	Owner   Owner  `json:"owner"`
	Origin  StarID `json:"origin"`
	Dest    StarID `json:"dest"`
	Ships   int    `json:"ships"`
}

func (HyperspaceLossEvent) Kind() EventKind { return EventHyperspaceLoss }

// RebellionOutcome says whether an under-garrisoned star was held.
type RebellionOutcome string

const (
	RebellionSuppressed RebellionOutcome = "suppressed"
	RebellionLost       RebellionOutcome = "lost"
)

// RebellionEvent records a rebellion roll at an under-garrisoned star.
// Suppressed rebellions are emitted for telemetry only.
type RebellionEvent struct {
	Star           StarID           `json:"star_id"`
	GarrisonBefore int              `json:"garrison_before"`
	RebelShips     int              `json:"rebel_ships"`
	Outcome        RebellionOutcome `json:"outcome"`
	GarrisonAfter  int              `json:"garrison_after"`
}

func (RebellionEvent) Kind() EventKind { return EventRebellion }

// ProductionEvent records ships produced at an owned star. Telemetry
// only: suppressing it must not change any state.
type ProductionEvent struct {
	Player     Owner  `json:"player"`
	Star       StarID `json:"star_id"`
	ShipsAdded int    `json:"ships_added"`
}

func (ProductionEvent) Kind() EventKind { return EventProduction }

// ArrivalEvent records a fleet arriving without combat (reinforcement or
// landing at an empty star).
type ArrivalEvent struct {
	FleetID int    `json:"fleet_id"`
	Star    StarID `json:"star_id"`
	Owner   Owner  `json:"owner"`
	Ships   int    `json:"ships"`
}

func (ArrivalEvent) Kind() EventKind { return EventArrival }
