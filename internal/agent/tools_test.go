package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeeve/space-conquest/pkg/conquest"
)

func TestToolbox_GetObservation(t *testing.T) {
	g := conquest.NewGame(17)
	tb := NewToolbox(g, conquest.P1)

	out, err := tb.Handle("get_observation", nil)
	require.NoError(t, err)

	obs, ok := out.(*conquest.Observation)
	require.True(t, ok)
	assert.Equal(t, conquest.P1, obs.Player)
	assert.NotEmpty(t, obs.Stars)

	// The toolbox must never leak another player's garrisons.
	for _, v := range obs.Stars {
		if v.Stationed != nil {
			require.NotNil(t, v.Owner)
			assert.Equal(t, conquest.P1, *v.Owner)
		}
	}
}

func TestToolbox_QueryStar(t *testing.T) {
	g := conquest.NewGame(17)
	tb := NewToolbox(g, conquest.P1)
	home := g.PlayerState[conquest.P1].Home

	args, _ := json.Marshal(map[string]string{"star_id": string(home)})
	out, err := tb.Handle("query_star", args)
	require.NoError(t, err)

	res, ok := out.(queryStarResult)
	require.True(t, ok)
	assert.True(t, res.Found)
	require.NotNil(t, res.Star)
	assert.Equal(t, home, res.Star.ID)
	assert.NotNil(t, res.Star.Stationed)
}

// Unknown star ids are a result, not an error.
func TestToolbox_QueryStar_NotFound(t *testing.T) {
	tb := NewToolbox(conquest.NewGame(17), conquest.P1)

	out, err := tb.Handle("query_star", json.RawMessage(`{"star_id": "ZZ"}`))
	require.NoError(t, err)

	res := out.(queryStarResult)
	assert.False(t, res.Found)
	assert.Nil(t, res.Star)
}

func TestToolbox_CalculateDistance(t *testing.T) {
	g := conquest.NewGame(17)
	tb := NewToolbox(g, conquest.P1)
	ids := g.StarIDs()

	args, _ := json.Marshal(map[string]string{
		"star_a": string(ids[0]),
		"star_b": string(ids[1]),
	})
	out, err := tb.Handle("calculate_distance", args)
	require.NoError(t, err)

	res := out.(distanceResult)
	assert.True(t, res.Found)
	want, err := g.Distance(ids[0], ids[1])
	require.NoError(t, err)
	assert.Equal(t, want, res.Distance)

	out, err = tb.Handle("calculate_distance", json.RawMessage(`{"star_a":"A","star_b":"ZZ"}`))
	require.NoError(t, err)
	assert.False(t, out.(distanceResult).Found)
}

func TestToolbox_SubmitOrders(t *testing.T) {
	g := conquest.NewGame(17)
	tb := NewToolbox(g, conquest.P1)
	home := g.PlayerState[conquest.P1].Home
	var dest conquest.StarID
	for _, id := range g.StarIDs() {
		if id != home {
			dest = id
			break
		}
	}

	args, _ := json.Marshal(submitOrdersArgs{Orders: []conquest.Order{
		{From: home, To: dest, Ships: 2},
	}})
	out, err := tb.Handle("submit_orders", args)
	require.NoError(t, err)
	require.True(t, out.(submitOrdersResult).Accepted)
	require.Len(t, tb.StagedOrders(), 1)

	// An invalid list is reported back but must not clobber the staging.
	args, _ = json.Marshal(submitOrdersArgs{Orders: []conquest.Order{
		{From: home, To: home, Ships: 1},
	}})
	out, err = tb.Handle("submit_orders", args)
	require.NoError(t, err)
	res := out.(submitOrdersResult)
	assert.False(t, res.Accepted)
	assert.NotEmpty(t, res.Errors)
	assert.Len(t, tb.StagedOrders(), 1)
	assert.Equal(t, 2, tb.StagedOrders()[0].Ships)
}

func TestToolbox_Errors(t *testing.T) {
	tb := NewToolbox(conquest.NewGame(17), conquest.P1)

	_, err := tb.Handle("launch_nukes", nil)
	assert.Error(t, err)

	_, err = tb.Handle("query_star", json.RawMessage(`{"star_id": 7`))
	assert.Error(t, err)
}

func TestToolbox_Definitions(t *testing.T) {
	tb := NewToolbox(conquest.NewGame(17), conquest.P1)

	names := make(map[string]bool)
	for _, d := range tb.Definitions() {
		names[d.Name] = true
		assert.NotEmpty(t, d.Description)
	}
	for _, want := range []string{"get_observation", "query_star", "calculate_distance"} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}
