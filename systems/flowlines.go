package systems

import (
	"github.com/pthm-cable/qql/components"
	"github.com/pthm-cable/qql/fastmath"
	"github.com/pthm-cable/qql/rng"
)

// FlowLine is the ordered list of positions traced from one start point.
type FlowLine []components.Position

// FlowLineGroup holds the lines traced from one start group.
type FlowLineGroup []FlowLine

var curveLengths = []int{500, 650, 850}

// flowStep is the distance between consecutive samples on a line.
const flowStep = components.VirtualW * 0.002

// TraceFlowLines walks every start point through the field. All lines share one length
// drawn up front; a group either follows the field or, with the ignore odds, heads in a
// straight line at the default angle.
func TraceFlowLines(field *FlowField, ignore IgnoreFlowField, groups StartGroups, r *rng.Rng) []FlowLineGroup {
	curveLength := rng.Choice(r, curveLengths)
	out := make([]FlowLineGroup, len(groups))
	for i, starts := range groups {
		out[i] = traceGroup(field, ignore, starts, curveLength, r.Odds(ignore.Odds))
	}
	return out
}

func traceGroup(field *FlowField, ignore IgnoreFlowField, starts []components.Position, curveLength int, straight bool) FlowLineGroup {
	group := make(FlowLineGroup, len(starts))
	for i, s := range starts {
		x, y := s.X, s.Y
		line := make(FlowLine, 0, curveLength)
		for range curveLength {
			// Lines stop once they leave the field.
			if !Contains(x, y) {
				break
			}
			theta := ignore.DefaultTheta
			if !straight {
				theta = field.Lookup(x, y)
			}
			line = append(line, components.Position{X: x, Y: y})
			x += flowStep * fastmath.Cos(theta)
			y += flowStep * fastmath.Sin(theta)
		}
		group[i] = line
	}
	return group
}
