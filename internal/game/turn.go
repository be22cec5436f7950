package game

// TurnScheduler decides whose turn it is. The active player is
// players[turn mod len(players)].
type TurnScheduler struct {
	players []*Entity
	turn    int
	active  *Entity

	// OnTurnStart fires after a player's budget has been reset.
	OnTurnStart func(turn int, p *Entity)
}

// NewTurnScheduler creates a scheduler over players; call Start to begin.
func NewTurnScheduler(players []*Entity) *TurnScheduler {
	return &TurnScheduler{players: players}
}

// Start resets the counter to zero and begins the first turn.
func (ts *TurnScheduler) Start() {
	ts.turn = 0
	ts.begin()
}

// Next advances to the following player.
func (ts *TurnScheduler) Next() {
	ts.turn++
	ts.begin()
}

func (ts *TurnScheduler) begin() {
	if len(ts.players) == 0 {
		ts.active = nil
		return
	}
	p := ts.players[ts.turn%len(ts.players)]
	ts.active = p
	p.StepsRemaining = p.Budget
	if p.NPC {
		p.State = StateDeciding
	} else {
		p.State = StateIdle
	}
	if ts.OnTurnStart != nil {
		ts.OnTurnStart(ts.turn, p)
	}
}

// Active returns the player whose turn it is, or nil before Start.
func (ts *TurnScheduler) Active() *Entity {
	return ts.active
}

// ActiveIndex returns turn mod player count.
func (ts *TurnScheduler) ActiveIndex() int {
	if len(ts.players) == 0 {
		return -1
	}
	return ts.turn % len(ts.players)
}

// Turn returns the monotonically increasing turn counter.
func (ts *TurnScheduler) Turn() int {
	return ts.turn
}

// Players returns the turn order.
func (ts *TurnScheduler) Players() []*Entity {
	return ts.players
}
