package storage

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Run is one headless simulation. Config holds the full configuration it
// ran with, Metrics the final metric values.
type Run struct {
	gorm.Model
	Name      string `gorm:"index"`
	Table     string
	Dt        float64
	Steps     int
	BodyCount int
	StartedAt time.Time
	EndedAt   *time.Time
	Halted    string
	Config    datatypes.JSON
	Metrics   datatypes.JSON
}

// Sample is one body's state at one step.
type Sample struct {
	ID    uint   `gorm:"primarykey"`
	RunID uint   `gorm:"index:idx_run_body_step,priority:1"`
	Body  string `gorm:"index:idx_run_body_step,priority:2"`
	Step  int    `gorm:"index:idx_run_body_step,priority:3"`
	X, Y  float64
	VX    float64 `gorm:"column:vx"`
	VY    float64 `gorm:"column:vy"`
}

// Event is something that happened during a run: a launch, a hit or the
// collision that stopped it.
type Event struct {
	ID     uint `gorm:"primarykey"`
	RunID  uint `gorm:"index"`
	Step   int
	Kind   string
	Detail string
	At     time.Time
}

const (
	EventLaunch    = "launch"
	EventHit       = "hit"
	EventCollision = "collision"
)

// Barycenter rows use this body name.
const BarycenterBody = "<barycenter>"

// RocketBody is the body name for rocket samples.
const RocketBody = "<rocket>"
