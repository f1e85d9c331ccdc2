package platform

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBellRingsOnImpactOnly(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf, true)
	require.NoError(t, b.Impact())
	require.NoError(t, b.Selection())
	require.Equal(t, "\a", buf.String())
}

func TestBellDisabled(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf, false)
	require.NoError(t, b.Impact())
	require.Empty(t, buf.String())

	var h Haptics = NoHaptics{}
	require.NoError(t, h.Impact())
}
