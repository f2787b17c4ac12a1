package crossing

// VehiclePhase is one step of the four-phase vehicle signal cycle.
type VehiclePhase int

const (
	Green VehiclePhase = iota
	YellowToRed
	Red
	YellowToGreen
)

// String returns the string representation of the phase
func (p VehiclePhase) String() string {
	switch p {
	case Green:
		return "GREEN"
	case YellowToRed:
		return "YELLOW_TO_RED"
	case Red:
		return "RED"
	case YellowToGreen:
		return "YELLOW_TO_GREEN"
	default:
		return "UNKNOWN"
	}
}

// Next returns the phase that follows p. The cycle never skips or reorders.
func (p VehiclePhase) Next() VehiclePhase {
	switch p {
	case Green:
		return YellowToRed
	case YellowToRed:
		return Red
	case Red:
		return YellowToGreen
	default:
		return Green
	}
}

// Pedestrian returns the pedestrian phase shown while vehicles are in p.
func (p VehiclePhase) Pedestrian() PedestrianPhase {
	switch p {
	case YellowToRed:
		return Wait
	case Red:
		return Walk
	case YellowToGreen:
		return Clearing
	default:
		return DontWalk
	}
}

// PedestrianPhase mirrors the vehicle phase: WALK only while vehicles are stopped.
type PedestrianPhase int

const (
	DontWalk PedestrianPhase = iota
	Wait
	Walk
	Clearing
)

// String returns the string representation of the phase
func (p PedestrianPhase) String() string {
	switch p {
	case DontWalk:
		return "DONT_WALK"
	case Wait:
		return "WAIT"
	case Walk:
		return "WALK"
	case Clearing:
		return "FLASHING_DONT_WALK"
	default:
		return "UNKNOWN"
	}
}
