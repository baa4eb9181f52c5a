package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/shopfloor/internal/mes"
)

func TestLookupCrafts_Dispatch(t *testing.T) {
	fake := newFakeMES()
	svc := NewLookupService(fake, "30")
	ctx := context.Background()

	opts, err := svc.Crafts(ctx, CraftQuery{BigType: "AUX"})
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "C01(Grinding)", opts[0].Text)

	_, err = svc.Crafts(ctx, CraftQuery{PlineCode: "PL1"})
	require.NoError(t, err)
	_, err = svc.Crafts(ctx, CraftQuery{BigType: "  "})
	require.NoError(t, err)

	assert.Equal(t, []string{"big:AUX", "pline:PL1", "list"}, fake.calls)
}

func TestLookupPassThrough(t *testing.T) {
	fake := newFakeMES()
	svc := NewLookupService(fake, "30")
	ctx := context.Background()

	_, err := svc.Machines(ctx)
	require.NoError(t, err)
	_, err = svc.Moulds(ctx, mes.MouldQuery{PlineCode: "PL1", Keyword: "M-1"})
	require.NoError(t, err)
	_, err = svc.Parts(ctx, "M-100")
	require.NoError(t, err)
	_, err = svc.Dicts(ctx, "quality_reason")
	require.NoError(t, err)

	assert.Equal(t, []string{"machines:30", "moulds:PL1:M-1", "parts:M-100", "dicts:quality_reason"}, fake.calls)
}
