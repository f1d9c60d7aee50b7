package dnd

import (
	"fmt"
	"slices"
)

// Probe is the id-only view of a drop that criteria are evaluated against.
// It is all the rendering surface knows while hovering.
type Probe struct {
	SourceID string
	ItemID   string
	TargetID string
	TabID    string
	Zone     VerticalZone
}

// AcceptCriterion gates drops. Accepts is evaluated on commit; Descriptor
// is the serializable form the rendering surface evaluates while hovering.
type AcceptCriterion interface {
	Accepts(e DropEvent) bool
	Descriptor() Descriptor
}

// CriterionKind names a serialized criterion.
type CriterionKind string

const (
	KindAll            CriterionKind = "all"
	KindNot            CriterionKind = "not"
	KindAnd            CriterionKind = "and"
	KindOr             CriterionKind = "or"
	KindSourceIsTarget CriterionKind = "source_is_target"
	KindZone           CriterionKind = "zone"
	KindTab            CriterionKind = "tab"
	KindServer         CriterionKind = "server"
)

// Descriptor is the wire form of an AcceptCriterion.
type Descriptor struct {
	Kind     CriterionKind  `json:"kind"`
	Zones    []VerticalZone `json:"zones,omitempty"`
	IDs      []string       `json:"ids,omitempty"`
	Children []Descriptor   `json:"children,omitempty"`
}

// Evaluate runs the criterion against p without a server round trip.
// Server-side criteria cannot be decided here and evaluate to true; the
// server re-checks them when the drop is committed.
func (d Descriptor) Evaluate(p Probe) bool {
	switch d.Kind {
	case KindAll, KindServer:
		return true
	case KindNot:
		if len(d.Children) == 0 {
			return false
		}
		return !d.Children[0].Evaluate(p)
	case KindAnd:
		for _, c := range d.Children {
			if !c.Evaluate(p) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range d.Children {
			if c.Evaluate(p) {
				return true
			}
		}
		return false
	case KindSourceIsTarget:
		return p.SourceID != "" && p.SourceID == p.TargetID
	case KindZone:
		return slices.Contains(d.Zones, p.Zone)
	case KindTab:
		return slices.Contains(d.IDs, p.TabID)
	}
	return false
}

// AcceptAll accepts every drop.
func AcceptAll() AcceptCriterion { return allCriterion{} }

// Not inverts c.
func Not(c AcceptCriterion) AcceptCriterion { return notCriterion{c} }

// And accepts when every criterion accepts.
func And(cs ...AcceptCriterion) AcceptCriterion { return andCriterion(cs) }

// Or accepts when any criterion accepts.
func Or(cs ...AcceptCriterion) AcceptCriterion { return orCriterion(cs) }

// SourceIsTarget accepts drags that started in the container they are
// dropped on.
func SourceIsTarget() AcceptCriterion { return sourceIsTarget{} }

// VerticalZoneIs accepts drops landing in one of zones.
func VerticalZoneIs(zones ...VerticalZone) AcceptCriterion {
	return zoneCriterion(slices.Clone(zones))
}

// TargetTabIs accepts drops onto one of the tabs with the given ids.
func TargetTabIs(ids ...string) AcceptCriterion {
	return tabCriterion(slices.Clone(ids))
}

// ServerSide wraps a predicate that can only run on the server. The
// surface optimistically allows the hover; fn decides on commit.
func ServerSide(fn func(e DropEvent) bool) AcceptCriterion {
	return &serverCriterion{fn: fn}
}

type allCriterion struct{}

func (allCriterion) Accepts(DropEvent) bool { return true }
func (allCriterion) Descriptor() Descriptor { return Descriptor{Kind: KindAll} }

type notCriterion struct{ c AcceptCriterion }

func (n notCriterion) Accepts(e DropEvent) bool { return n.c != nil && !n.c.Accepts(e) }
func (n notCriterion) Descriptor() Descriptor {
	if n.c == nil {
		return Descriptor{Kind: KindNot}
	}
	return Descriptor{Kind: KindNot, Children: []Descriptor{n.c.Descriptor()}}
}

type andCriterion []AcceptCriterion

func (a andCriterion) Accepts(e DropEvent) bool {
	for _, c := range a {
		if !c.Accepts(e) {
			return false
		}
	}
	return true
}

func (a andCriterion) Descriptor() Descriptor {
	return Descriptor{Kind: KindAnd, Children: descriptors(a)}
}

type orCriterion []AcceptCriterion

func (o orCriterion) Accepts(e DropEvent) bool {
	for _, c := range o {
		if c.Accepts(e) {
			return true
		}
	}
	return false
}

func (o orCriterion) Descriptor() Descriptor {
	return Descriptor{Kind: KindOr, Children: descriptors(o)}
}

type sourceIsTarget struct{}

func (sourceIsTarget) Accepts(e DropEvent) bool { return Descriptor{Kind: KindSourceIsTarget}.Evaluate(e.Probe()) }
func (sourceIsTarget) Descriptor() Descriptor   { return Descriptor{Kind: KindSourceIsTarget} }

type zoneCriterion []VerticalZone

func (z zoneCriterion) Accepts(e DropEvent) bool { return z.Descriptor().Evaluate(e.Probe()) }
func (z zoneCriterion) Descriptor() Descriptor {
	return Descriptor{Kind: KindZone, Zones: slices.Clone(z)}
}

type tabCriterion []string

func (t tabCriterion) Accepts(e DropEvent) bool { return t.Descriptor().Evaluate(e.Probe()) }
func (t tabCriterion) Descriptor() Descriptor {
	return Descriptor{Kind: KindTab, IDs: slices.Clone(t)}
}

type serverCriterion struct {
	fn func(e DropEvent) bool
}

func (s *serverCriterion) Accepts(e DropEvent) bool { return s.fn == nil || s.fn(e) }
func (s *serverCriterion) Descriptor() Descriptor   { return Descriptor{Kind: KindServer} }

func descriptors(cs []AcceptCriterion) []Descriptor {
	out := make([]Descriptor, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Descriptor())
	}
	return out
}

// FromDescriptor rebuilds a criterion from its wire form. Server-side
// criteria carry no predicate on the wire and cannot be rebuilt.
func FromDescriptor(d Descriptor) (AcceptCriterion, error) {
	switch d.Kind {
	case KindAll:
		return AcceptAll(), nil
	case KindSourceIsTarget:
		return SourceIsTarget(), nil
	case KindZone:
		return VerticalZoneIs(d.Zones...), nil
	case KindTab:
		return TargetTabIs(d.IDs...), nil
	case KindNot:
		if len(d.Children) != 1 {
			return nil, fmt.Errorf("criterion %q needs exactly one child, got %d", d.Kind, len(d.Children))
		}
		c, err := FromDescriptor(d.Children[0])
		if err != nil {
			return nil, err
		}
		return Not(c), nil
	case KindAnd, KindOr:
		cs := make([]AcceptCriterion, 0, len(d.Children))
		for _, child := range d.Children {
			c, err := FromDescriptor(child)
			if err != nil {
				return nil, err
			}
			cs = append(cs, c)
		}
		if d.Kind == KindAnd {
			return And(cs...), nil
		}
		return Or(cs...), nil
	}
	return nil, fmt.Errorf("cannot rebuild criterion of kind %q", d.Kind)
}
