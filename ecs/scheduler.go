package ecs

// System advances part of the world by the scheduler's elapsed time.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in a fixed order. The simulation and presentation
// phases each own one.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := make([]System, 0, len(systems))
	for _, s := range systems {
		if s != nil {
			copied = append(copied, s)
		}
	}
	return &Scheduler{systems: copied}
}

// Update publishes dt (seconds) on the world and runs every system once.
func (s *Scheduler) Update(w *World, dt float64) {
	if s == nil || w == nil {
		return
	}
	w.delta = dt
	for _, system := range s.systems {
		system.Update(w)
	}
}
