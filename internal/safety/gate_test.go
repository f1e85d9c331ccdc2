package safety

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingDismisser struct {
	ids []string
	err error
}

func (r *recordingDismisser) Dismiss(_ context.Context, tokenID string) error {
	if r.err != nil {
		return r.err
	}
	r.ids = append(r.ids, tokenID)
	return nil
}

func TestEvaluateSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		level     Level
		dismissed bool
		enabled   bool
		want      Decision
	}{
		{"verified", Verified, false, true, Proceed},
		{"medium not dismissed", MediumWarning, false, true, ShowWarning},
		{"medium dismissed", MediumWarning, true, true, Proceed},
		{"strong not dismissed", StrongWarning, false, true, ShowWarning},
		{"strong dismissed", StrongWarning, true, true, Proceed},
		{"blocked not dismissed", Blocked, false, true, ShowWarning},
		{"blocked dismissed", Blocked, true, true, ShowWarning},
		{"warnings off blocked", Blocked, false, false, Proceed},
		{"warnings off medium", MediumWarning, false, false, Proceed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, EvaluateSelection(tc.level, tc.dismissed, tc.enabled))
		})
	}
}

func TestGateProceedsWithoutWarning(t *testing.T) {
	t.Parallel()

	d := &recordingDismisser{}
	blurred := 0
	g := NewGate(d, WithBlurInput(func() { blurred++ }))

	calls := 0
	decision := g.Select("1-0xabc", Verified, false, func() { calls++ })
	require.Equal(t, Proceed, decision)
	require.Equal(t, 1, calls)
	require.Equal(t, Idle, g.State())
	require.Zero(t, blurred)
	require.Empty(t, d.ids)
}

func TestGateAcceptRecordsDismissalAndSelectsOnce(t *testing.T) {
	t.Parallel()

	d := &recordingDismisser{}
	blurred := 0
	g := NewGate(d, WithBlurInput(func() { blurred++ }))

	calls := 0
	decision := g.Select("1-0xscam", MediumWarning, false, func() {
		require.Equal(t, Idle, g.State(), "modal closes before the selection runs")
		calls++
	})
	require.Equal(t, ShowWarning, decision)
	require.Equal(t, WarningVisible, g.State())
	require.Equal(t, 1, blurred)
	require.Zero(t, calls)

	pending, ok := g.Pending()
	require.True(t, ok)
	require.Equal(t, Pending{TokenID: "1-0xscam", Level: MediumWarning}, pending)

	require.NoError(t, g.Accept(context.Background()))
	require.Equal(t, Idle, g.State())
	require.Equal(t, 1, calls)
	require.Equal(t, []string{"1-0xscam"}, d.ids)

	require.ErrorIs(t, g.Accept(context.Background()), ErrNoPendingWarning)
	require.Equal(t, 1, calls)
	require.Len(t, d.ids, 1)
}

func TestGateCloseDropsSelection(t *testing.T) {
	t.Parallel()

	d := &recordingDismisser{}
	g := NewGate(d)

	calls := 0
	g.Select("1-0xstrong", StrongWarning, false, func() { calls++ })
	require.NoError(t, g.Close())
	require.Equal(t, Idle, g.State())
	require.Zero(t, calls)
	require.Empty(t, d.ids)

	_, ok := g.Pending()
	require.False(t, ok)
	require.ErrorIs(t, g.Close(), ErrNoPendingWarning)
}

func TestGateBlockedCannotBeAccepted(t *testing.T) {
	t.Parallel()

	d := &recordingDismisser{}
	g := NewGate(d)

	calls := 0
	require.Equal(t, ShowWarning, g.Select("1-0xblocked", Blocked, true, func() { calls++ }))
	require.ErrorIs(t, g.Accept(context.Background()), ErrBlockedToken)
	require.Equal(t, WarningVisible, g.State())
	require.Zero(t, calls)
	require.Empty(t, d.ids)

	require.NoError(t, g.Close())
	require.Zero(t, calls)
}

func TestGateDismissFailureKeepsWarningOpen(t *testing.T) {
	t.Parallel()

	d := &recordingDismisser{err: errors.New("disk full")}
	g := NewGate(d)

	calls := 0
	g.Select("1-0xmed", MediumWarning, false, func() { calls++ })
	err := g.Accept(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "disk full")
	require.Equal(t, WarningVisible, g.State())
	require.Zero(t, calls)
}

func TestGateWarningsDisabled(t *testing.T) {
	t.Parallel()

	g := NewGate(nil, WithWarningsEnabled(false))
	calls := 0
	require.Equal(t, Proceed, g.Select("1-0xblocked", Blocked, false, func() { calls++ }))
	require.Equal(t, 1, calls)

	g.SetWarningsEnabled(true)
	require.True(t, g.WarningsEnabled())
	require.Equal(t, ShowWarning, g.Select("1-0xblocked", Blocked, false, func() { calls++ }))
	require.Equal(t, 1, calls)
}

func TestGateIgnoresSelectWhileWarningShowing(t *testing.T) {
	t.Parallel()

	g := NewGate(&recordingDismisser{})
	first, second := 0, 0
	g.Select("a", MediumWarning, false, func() { first++ })
	require.Equal(t, ShowWarning, g.Select("b", Verified, false, func() { second++ }))

	pending, _ := g.Pending()
	require.Equal(t, "a", pending.TokenID)
	require.NoError(t, g.Accept(context.Background()))
	require.Equal(t, 1, first)
	require.Zero(t, second)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, l := range []Level{Verified, MediumWarning, StrongWarning, Blocked} {
		got, err := ParseLevel(l.String())
		require.NoError(t, err)
		require.Equal(t, l, got)
	}

	got, err := ParseLevel("Strong-Warning")
	require.NoError(t, err)
	require.Equal(t, StrongWarning, got)

	got, err = ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, Verified, got)

	_, err = ParseLevel("spam")
	require.ErrorIs(t, err, ErrUnknownSafetyLevel)

	require.True(t, MediumWarning.Dismissible())
	require.False(t, Blocked.Dismissible())
	require.True(t, Blocked.Warns())
	require.False(t, Verified.Warns())
}
