package tess

// Action is an edge-triggered input command for the Controller.
type Action int

const (
	ActionNone = Action(iota)
	ActionDomainTriangles
	ActionDomainQuads
	ActionDomainIsolines
	ActionSpacingEqual
	ActionSpacingFractionalEven
	ActionSpacingFractionalOdd
	ActionToggleRenderMode
)

// Change reports what a dispatched action did. Err is set when the new
// selection has no pipeline; the previous program is still bound.
type Change struct {
	Message string
	Err     error
}

// Dispatch applies a to c. Unknown actions are ignored.
func (c *Controller) Dispatch(a Action) (Change, bool) {
	switch a {
	case ActionDomainTriangles, ActionDomainQuads, ActionDomainIsolines:
		d := Domain(a - ActionDomainTriangles)
		err := c.SetDomain(d)
		return Change{"Domain: " + d.Title(), err}, true
	case ActionSpacingEqual, ActionSpacingFractionalEven, ActionSpacingFractionalOdd:
		s := Spacing(a - ActionSpacingEqual)
		err := c.SetSpacing(s)
		return Change{"Spacing: " + s.Title(), err}, true
	case ActionToggleRenderMode:
		m := c.ToggleRenderMode()
		return Change{Message: "Render Mode: " + m.String()}, true
	}
	return Change{}, false
}
