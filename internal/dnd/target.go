package dnd

// TargetDetails describes where a drop landed. Immutable.
type TargetDetails struct {
	target   Component
	tabID    string
	tabIndex int
	content  Component
	zone     VerticalZone
	pos      float64
	data     Payload
}

// TargetSpec carries the resolved fields of a TargetDetails.
type TargetSpec struct {
	Target   Component    // container the drop landed in
	TabID    string       // id of the tab under the pointer, empty if none
	TabIndex int          // index of that tab, -1 if none
	Content  Component    // content of that tab
	Zone     VerticalZone // classified vertical zone
	Position float64      // normalized vertical position used for the zone
}

// NewTargetDetails builds an immutable TargetDetails from spec and the raw
// client data.
func NewTargetDetails(spec TargetSpec, data Payload) *TargetDetails {
	return &TargetDetails{
		target:   spec.Target,
		tabID:    spec.TabID,
		tabIndex: spec.TabIndex,
		content:  spec.Content,
		zone:     spec.Zone,
		pos:      spec.Position,
		data:     data.Clone(),
	}
}

func (d *TargetDetails) Target() Component     { return d.target }
func (d *TargetDetails) TabID() string         { return d.tabID }
func (d *TargetDetails) TabIndex() int         { return d.tabIndex }
func (d *TargetDetails) TabContent() Component { return d.content }
func (d *TargetDetails) Zone() VerticalZone    { return d.zone }
func (d *TargetDetails) Position() float64     { return d.pos }
func (d *TargetDetails) OnTab() bool           { return d.tabIndex >= 0 }
func (d *TargetDetails) Data(key string) (any, bool) {
	v, ok := d.data[key]
	return v, ok
}
