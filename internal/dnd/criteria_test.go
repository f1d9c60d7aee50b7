package dnd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dropEvent(source, target, tab string, zone VerticalZone) DropEvent {
	return DropEvent{
		Transferable: NewTransferable(Ref(source), Ref("item"), 0, nil),
		Target: NewTargetDetails(TargetSpec{
			Target:   Ref(target),
			TabID:    tab,
			TabIndex: 0,
			Zone:     zone,
		}, nil),
	}
}

func TestCriteriaAcceptAndDescriptorAgree(t *testing.T) {
	criteria := map[string]AcceptCriterion{
		"all":           AcceptAll(),
		"same source":   SourceIsTarget(),
		"outer zones":   VerticalZoneIs(ZoneAbove, ZoneBelow),
		"tab":           TargetTabIs("t1"),
		"not tab":       Not(TargetTabIs("t1")),
		"and":           And(SourceIsTarget(), VerticalZoneIs(ZoneMiddle)),
		"or":            Or(TargetTabIs("t2"), VerticalZoneIs(ZoneBelow)),
		"empty and":     And(),
		"empty or":      Or(),
		"nested":        Not(Or(And(SourceIsTarget(), TargetTabIs("t1")), VerticalZoneIs(ZoneAbove))),
		"nil inversion": Not(nil),
	}
	events := []DropEvent{
		dropEvent("s", "s", "t1", ZoneAbove),
		dropEvent("s", "s", "t1", ZoneMiddle),
		dropEvent("s", "s", "t2", ZoneBelow),
		dropEvent("s", "x", "t1", ZoneMiddle),
		dropEvent("s", "x", "t2", ZoneAbove),
		dropEvent("", "", "", ZoneMiddle),
	}

	for name, c := range criteria {
		for i, e := range events {
			assert.Equal(t, c.Accepts(e), c.Descriptor().Evaluate(e.Probe()), "%s / event %d", name, i)
		}
	}
}

func TestSourceIsTarget(t *testing.T) {
	c := SourceIsTarget()
	assert.True(t, c.Accepts(dropEvent("sheet", "sheet", "t", ZoneMiddle)))
	assert.False(t, c.Accepts(dropEvent("other", "sheet", "t", ZoneMiddle)))
	assert.False(t, c.Accepts(dropEvent("", "", "t", ZoneMiddle)))
}

func TestServerSideCriterion(t *testing.T) {
	c := ServerSide(func(e DropEvent) bool { return e.Target.TabID() == "ok" })

	// the surface cannot run the predicate, so it lets the hover through
	assert.True(t, c.Descriptor().Evaluate(Probe{TabID: "nope"}))
	assert.False(t, c.Accepts(dropEvent("s", "s", "nope", ZoneMiddle)))
	assert.True(t, c.Accepts(dropEvent("s", "s", "ok", ZoneMiddle)))

	_, err := FromDescriptor(c.Descriptor())
	assert.Error(t, err)
}

func TestDescriptorJSON(t *testing.T) {
	c := And(SourceIsTarget(), VerticalZoneIs(ZoneAbove, ZoneBelow))
	data, err := json.Marshal(c.Descriptor())
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"and","children":[{"kind":"source_is_target"},{"kind":"zone","zones":["above","below"]}]}`, string(data))

	var d Descriptor
	require.NoError(t, json.Unmarshal(data, &d))
	rebuilt, err := FromDescriptor(d)
	require.NoError(t, err)
	assert.Equal(t, c.Descriptor(), rebuilt.Descriptor())
}

func TestFromDescriptorRejectsMalformed(t *testing.T) {
	_, err := FromDescriptor(Descriptor{Kind: KindNot})
	assert.Error(t, err)
	_, err = FromDescriptor(Descriptor{Kind: "teleport"})
	assert.Error(t, err)
	_, err = FromDescriptor(Descriptor{Kind: KindOr, Children: []Descriptor{{Kind: KindServer}}})
	assert.Error(t, err)
}
