package agent

import (
	"encoding/json"
	"fmt"

	"github.com/freeeve/space-conquest/pkg/conquest"
)

// Toolbox is the tool surface handed to an LLM decision loop. Every tool
// is read-only and answers from the viewer's fog-limited perspective, so
// a model can never be prompted into leaking hidden state.
type Toolbox struct {
	game   *conquest.Game
	player conquest.Owner
	staged []conquest.Order
}

// NewToolbox binds the tool surface to one player's view of a game.
func NewToolbox(g *conquest.Game, player conquest.Owner) *Toolbox {
	return &Toolbox{game: g, player: player}
}

// ToolDefinition describes one callable tool for prompt construction.
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  string `json:"parameters"`
}

// Definitions lists the tools a decision loop may call.
func (tb *Toolbox) Definitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "get_observation",
			Description: "Current fog-of-war view: your stars, your fleets, and the static rules.",
			Parameters:  "{}",
		},
		{
			Name:        "query_star",
			Description: "Look up a single star by id. Unknown ids return found=false.",
			Parameters:  `{"star_id": "string"}`,
		},
		{
			Name:        "calculate_distance",
			Description: "Manhattan distance between two stars; a fleet needs that many turns.",
			Parameters:  `{"star_a": "string", "star_b": "string"}`,
		},
		{
			Name:        "submit_orders",
			Description: "Stage this turn's orders. Calling again replaces the staged list.",
			Parameters:  `{"orders": [{"from_star": "string", "to_star": "string", "ships": 1}]}`,
		},
	}
}

type queryStarArgs struct {
	StarID conquest.StarID `json:"star_id"`
}

type queryStarResult struct {
	Found bool               `json:"found"`
	Star  *conquest.StarView `json:"star,omitempty"`
}

type distanceArgs struct {
	StarA conquest.StarID `json:"star_a"`
	StarB conquest.StarID `json:"star_b"`
}

type distanceResult struct {
	Found    bool `json:"found"`
	Distance int  `json:"distance,omitempty"`
}

type submitOrdersArgs struct {
	Orders []conquest.Order `json:"orders"`
}

type submitOrdersResult struct {
	Accepted bool     `json:"accepted"`
	Errors   []string `json:"errors,omitempty"`
}

// StagedOrders returns the last order list accepted via the submit_orders
// tool. Nil means the model staged nothing, which plays as a no-op turn.
func (tb *Toolbox) StagedOrders() []conquest.Order {
	return tb.staged
}

// Handle dispatches one tool call. Unknown star ids come back as
// found=false results rather than errors; only malformed arguments or an
// unknown tool name fail.
func (tb *Toolbox) Handle(name string, args json.RawMessage) (any, error) {
	switch name {
	case "get_observation":
		return conquest.Observe(tb.game, tb.player)

	case "query_star":
		var a queryStarArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("query_star: bad arguments: %w", err)
		}
		v, ok := conquest.QueryStar(tb.game, tb.player, a.StarID)
		if !ok {
			return queryStarResult{Found: false}, nil
		}
		return queryStarResult{Found: true, Star: v}, nil

	case "calculate_distance":
		var a distanceArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("calculate_distance: bad arguments: %w", err)
		}
		d, err := tb.game.Distance(a.StarA, a.StarB)
		if err != nil {
			return distanceResult{Found: false}, nil
		}
		return distanceResult{Found: true, Distance: d}, nil

	case "submit_orders":
		var a submitOrdersArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("submit_orders: bad arguments: %w", err)
		}
		// Validation feedback goes back to the model; invalid lists are
		// not staged, so the previous staging survives.
		if v := conquest.ValidateOrders(tb.game, tb.player, a.Orders); !v.Accepted {
			return submitOrdersResult{Accepted: false, Errors: v.Errors}, nil
		}
		tb.staged = a.Orders
		return submitOrdersResult{Accepted: true}, nil

	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}
