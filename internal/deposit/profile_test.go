package deposit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileOf(t *testing.T) {
	d := Deposit{
		Name: "Tanbreez", Owner: "Critical Metals Corp", Status: "Advancing",
		GeologicalScore: 85, RegulatoryScore: 90, OwnershipScore: 95,
		InfrastructureScore: 60, GeopoliticalScore: 70, StrategicScore: 80,
	}
	p := ProfileOf(d)

	assert.Equal(t, "Tanbreez", p.Name)
	assert.Equal(t, BandStrong, p.Band)
	require.Len(t, p.Lenses, 5)

	keys := make([]string, len(p.Lenses))
	for i, l := range p.Lenses {
		keys[i] = l.Key
		assert.NotEmpty(t, l.Description)
	}
	assert.Equal(t, []string{"geological", "regulatory", "ownership", "infrastructure", "geopolitical"}, keys)
	assert.Equal(t, 60.0, p.Lenses[3].Score)
	assert.Equal(t, BandModerate, p.Lenses[3].Band)
}

func TestCompare(t *testing.T) {
	base := Deposit{Name: "a", GeologicalScore: 85, RegulatoryScore: 90, StrategicScore: 80}
	other := Deposit{Name: "b", GeologicalScore: 90, RegulatoryScore: 20, StrategicScore: 52}

	c := Compare(base, other)
	assert.Equal(t, "a", c.Base.Name)
	assert.Equal(t, "b", c.Other.Name)
	assert.Equal(t, -28.0, c.StrategicDelta)
	require.Len(t, c.Lenses, 5)
	assert.Equal(t, 5.0, c.Lenses[0].Delta)
	assert.Equal(t, -70.0, c.Lenses[1].Delta)
	assert.Zero(t, c.Lenses[4].Delta)
}
