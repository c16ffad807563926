package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Occupy_setsFingerprintAndClearsNext(t *testing.T) {
	var c Cell[string, int]
	c.Next = 42
	c.Occupy(0x1234, "k", 7)

	assert.True(t, c.Occupied())
	assert.Equal(t, uint64(0x1234), c.Fingerprint())
	assert.Equal(t, "k", c.Key)
	assert.Equal(t, 7, c.Value)
	assert.Equal(t, uint64(0), c.Next)
}

func Test_Vacate_clearsOccupiedAndNext_butKeepsKeyValue(t *testing.T) {
	var c Cell[string, int]
	c.Occupy(0x1, "k", 7)
	c.Next = 5

	c.Vacate()

	assert.False(t, c.Occupied())
	assert.Equal(t, uint64(0), c.Next)
	assert.Equal(t, "k", c.Key, "Vacate must not clear Key")
	assert.Equal(t, 7, c.Value, "Vacate must not clear Value")
}

func Test_Reset_clearsEverything(t *testing.T) {
	var c Cell[string, int]
	c.Occupy(0x1, "k", 7)
	c.Next = 5

	c.Reset()

	assert.False(t, c.Occupied())
	assert.Equal(t, uint64(0), c.Meta)
	assert.Equal(t, uint64(0), c.Next)
	assert.Equal(t, "", c.Key)
	assert.Equal(t, 0, c.Value)
}
