package canvas

import (
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/ui"
)

// CenterImage returns an operation centring the image of the canvas with the given id. The
// offset is computed on the canvas's next update, once its bounds are known.
//
// Parameters:
//   - id: the canvas id
//
// Returns:
//   - ui.Operation: the operation to pass to Host.Operate
func CenterImage(id string) ui.Operation {
	return ui.OperationFunc(func(target string, _ common.Rect, state any) {
		if st, ok := state.(*State); ok && target == id {
			st.RequestCenter()
		}
	})
}

// ScaleImage returns an operation setting the scale of the canvas with the given id, anchored at
// the centre of its bounds. Out of range values are clamped when applied.
//
// Parameters:
//   - id: the canvas id
//   - scale: the requested scale
//
// Returns:
//   - ui.Operation: the operation to pass to Host.Operate
func ScaleImage(id string, scale float32) ui.Operation {
	return ui.OperationFunc(func(target string, _ common.Rect, state any) {
		if st, ok := state.(*State); ok && target == id {
			st.RequestScale(scale)
		}
	})
}
