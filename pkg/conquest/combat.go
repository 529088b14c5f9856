package conquest

import "sort"

// combatParty is one side's pooled ships at a contested star: all of an
// owner's arriving fleets, plus the garrison when that owner holds the star.
type combatParty struct {
	owner Owner
	ships int
}

// starResolution is what resolveStar hands back to the turn executor.
type starResolution struct {
	events   []Event
	fought   []Owner // players that took part in a battle here
	captured bool    // ownership moved to an arriving player
}

// resolveStar resolves every fleet arriving at one star this turn as a
// single engagement, so later arrivals never see a mid-turn owner.
func resolveStar(star *Star, arrivals []Fleet) starResolution {
	var res starResolution

	arrivedShips := make(map[Owner]int)
	for _, f := range arrivals {
		arrivedShips[f.Owner] += f.Ships
	}

	// Pure reinforcement: only the current owner's fleets arrived.
	if star.Owner.IsPlayer() && len(arrivedShips) == 1 && arrivedShips[star.Owner] > 0 {
		for _, f := range arrivals {
			star.Stationed += f.Ships
			res.events = append(res.events, ArrivalEvent{
				FleetID: f.ID,
				Star:    star.ID,
				Owner:   f.Owner,
				Ships:   f.Ships,
			})
		}
		return res
	}

	// Build the defender pool: garrison plus the owner's own arrivals.
	var defender *combatParty
	if star.Owner != NoOwner {
		pool := star.Stationed + arrivedShips[star.Owner]
		if pool > 0 {
			defender = &combatParty{owner: star.Owner, ships: pool}
		}
	}

	// Attackers ordered by size, ties broken p1 before p2.
	var attackers []*combatParty
	for _, pid := range Players() {
		if pid == star.Owner {
			continue
		}
		if n := arrivedShips[pid]; n > 0 {
			attackers = append(attackers, &combatParty{owner: pid, ships: n})
		}
	}
	sort.SliceStable(attackers, func(i, j int) bool {
		if attackers[i].ships != attackers[j].ships {
			return attackers[i].ships > attackers[j].ships
		}
		return attackers[i].owner == P1
	})

	prevOwner := star.Owner

	// Uncontested landing: nothing to fight.
	if defender == nil && len(attackers) == 1 {
		winner := attackers[0]
		star.Owner = winner.owner
		star.Stationed = winner.ships
		res.captured = true
		for _, f := range arrivals {
			res.events = append(res.events, ArrivalEvent{
				FleetID: f.ID,
				Star:    star.ID,
				Owner:   f.Owner,
				Ships:   f.Ships,
			})
		}
		// An abandoned home still records its fall, so every home-capture
		// carries the flag even when no shot was fired.
		if star.IsHome && prevOwner.IsPlayer() {
			res.events = append(res.events, CombatEvent{
				Star:              star.ID,
				Attacker:          winner.owner,
				Defender:          prevOwner,
				AttackerShips:     winner.ships,
				AttackerSurvivors: winner.ships,
				Winner:            OutcomeAttacker,
				HomeCapture:       true,
			})
		}
		return res
	}

	// Pairwise resolution: the larger attacker engages the defender
	// first; the survivor then meets the remaining attacker.
	holder := defender
	lastCombat := -1
	engaged := make(map[Owner]bool)
	for _, att := range attackers {
		if holder == nil || holder.ships == 0 {
			holder = att
			continue
		}
		ev := battle(att, holder, star.ID)
		engaged[att.owner] = true
		engaged[holder.owner] = true
		res.events = append(res.events, ev)
		lastCombat = len(res.events) - 1
		switch ev.Winner {
		case OutcomeAttacker:
			holder = att
		case OutcomeMutual:
			holder = nil
		}
	}

	for pid := range engaged {
		if pid.IsPlayer() {
			res.fought = append(res.fought, pid)
		}
	}
	sort.Slice(res.fought, func(i, j int) bool { return res.fought[i] == P1 })

	if holder != nil && holder.ships > 0 {
		if holder.owner == prevOwner {
			star.Stationed = holder.ships
		} else {
			star.Owner = holder.owner
			star.Stationed = holder.ships
			res.captured = true
		}
	} else {
		// Mutual destruction: ownership unchanged, garrison wiped.
		star.Stationed = 0
	}

	if res.captured && star.IsHome && prevOwner.IsPlayer() && lastCombat >= 0 {
		ev := res.events[lastCombat].(CombatEvent)
		ev.HomeCapture = true
		res.events[lastCombat] = ev
	}

	return res
}

// battle resolves one pairwise engagement. Equal forces destroy each
// other; otherwise the larger side wins and loses ceil(loser/2) ships.
func battle(att, def *combatParty, star StarID) CombatEvent {
	ev := CombatEvent{
		Star:          star,
		Attacker:      att.owner,
		Defender:      def.owner,
		AttackerShips: att.ships,
		DefenderShips: def.ships,
	}

	switch {
	case att.ships == def.ships:
		att.ships = 0
		def.ships = 0
		ev.Winner = OutcomeMutual
	case att.ships > def.ships:
		att.ships -= (def.ships + 1) / 2
		def.ships = 0
		ev.Winner = OutcomeAttacker
	default:
		def.ships -= (att.ships + 1) / 2
		att.ships = 0
		ev.Winner = OutcomeDefender
	}

	ev.AttackerSurvivors = att.ships
	ev.DefenderSurvivors = def.ships
	return ev
}
