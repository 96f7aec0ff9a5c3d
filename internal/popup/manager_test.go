package popup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AdmitBelowCapacity(t *testing.T) {
	m := NewManager(EvictNewest)

	_, didEvict, admitted := m.Admit(1, 3)
	assert.True(t, admitted)
	assert.False(t, didEvict)
	assert.Equal(t, 1, m.Count())
	assert.True(t, m.Contains(1))
}

func TestManager_AdmitAtCapacityEvictsNewest(t *testing.T) {
	m := NewManager(EvictNewest)

	m.Admit(1, 2)
	m.Admit(2, 2)

	evicted, didEvict, admitted := m.Admit(3, 2)
	assert.True(t, admitted)
	require.True(t, didEvict)
	assert.Equal(t, uint32(2), evicted, "the most-recently-admitted popup makes room")

	assert.Equal(t, []uint32{1, 3}, m.IDs())
}

func TestManager_AdmitAtCapacityEvictsOldest(t *testing.T) {
	m := NewManager(EvictOldest)

	m.Admit(1, 2)
	m.Admit(2, 2)

	evicted, didEvict, admitted := m.Admit(3, 2)
	assert.True(t, admitted)
	require.True(t, didEvict)
	assert.Equal(t, uint32(1), evicted)

	assert.Equal(t, []uint32{2, 3}, m.IDs())
}

func TestManager_CapacityInvariant(t *testing.T) {
	m := NewManager(EvictNewest)

	const max = 3
	for id := uint32(1); id <= 20; id++ {
		m.Admit(id, max)
		assert.LessOrEqual(t, m.Count(), max)
	}
}

func TestManager_NonPositiveMaxDisablesPopups(t *testing.T) {
	m := NewManager(EvictNewest)

	for _, max := range []int{0, -1, -100} {
		_, didEvict, admitted := m.Admit(1, max)
		assert.False(t, admitted, "max=%d", max)
		assert.False(t, didEvict, "max=%d", max)
	}
	assert.Equal(t, 0, m.Count())
}

func TestManager_Remove(t *testing.T) {
	m := NewManager(EvictNewest)

	m.Admit(1, 3)
	m.Admit(2, 3)

	assert.True(t, m.Remove(1))
	assert.False(t, m.Remove(1))
	assert.Equal(t, []uint32{2}, m.IDs())
}

func TestManager_ParsePolicy(t *testing.T) {
	assert.Equal(t, EvictOldest, ParsePolicy("oldest"))
	assert.Equal(t, EvictNewest, ParsePolicy("newest"))
	assert.Equal(t, EvictNewest, ParsePolicy(""))
	assert.Equal(t, EvictNewest, ParsePolicy("bogus"))
}
