package display

import (
	"github.com/GriffinCanCode/crosswalk/internal/controller"
	"github.com/GriffinCanCode/crosswalk/internal/crossing"
)

// Fanout forwards each render to every sink in order
type Fanout []controller.Display

// Render implements controller.Display
func (f Fanout) Render(v crossing.VehiclePhase, p crossing.PedestrianPhase, crossingActive bool) {
	for _, sink := range f {
		if sink != nil {
			sink.Render(v, p, crossingActive)
		}
	}
}
