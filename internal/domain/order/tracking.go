package order

import "time"

// StepStatus is the progress state of one tracking step.
type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepCurrent   StepStatus = "current"
	StepUpcoming  StepStatus = "upcoming"
)

// TrackingStep is one stage of an export shipment's journey.
type TrackingStep struct {
	Label  string     `json:"label"`
	Date   time.Time  `json:"date"`
	Status StepStatus `json:"status"`
}

// trackingStages are the fixed stages of an export shipment, in order.
var trackingStages = []string{
	"Order in Packing",
	"On Transit",
	"On Cargo",
	"Delivered",
}

// Tracking derives a shipment timeline from the order's status and age.
// Delivered orders show all stages complete; canceled orders freeze at the
// packing stage; pending orders advance one stage every two days.
func Tracking(o Order, now time.Time) []TrackingStep {
	current := currentStage(o, now)

	steps := make([]TrackingStep, len(trackingStages))
	for i, label := range trackingStages {
		status := StepUpcoming
		switch {
		case i < current:
			status = StepCompleted
		case i == current:
			status = StepCurrent
		}
		steps[i] = TrackingStep{
			Label:  label,
			Date:   o.CreatedAt.AddDate(0, 0, i*2),
			Status: status,
		}
	}
	return steps
}

func currentStage(o Order, now time.Time) int {
	switch o.Status {
	case StatusDelivered:
		return len(trackingStages)
	case StatusCanceled:
		return 0
	}

	age := int(now.Sub(o.CreatedAt).Hours() / 48)
	if age >= len(trackingStages)-1 {
		return len(trackingStages) - 1
	}
	return age
}
