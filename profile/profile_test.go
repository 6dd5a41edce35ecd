package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Start_EmptyModeIsNoop(t *testing.T) {
	stop := Config{}.Start()

	assert.IsType(t, ignore{}, stop)
	assert.NotPanics(t, stop.Stop)
}

func TestConfig_Start_UnknownModeIsNoop(t *testing.T) {
	stop := Config{Mode: "bogus", Path: t.TempDir(), Quiet: true}.Start()

	assert.IsType(t, ignore{}, stop)
	assert.NotPanics(t, stop.Stop)
}
