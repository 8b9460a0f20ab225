package export

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"github.com/samber/lo"

	"github.com/san-kum/robometrics/internal/trace"
)

// Run is one simulation export.
type Run struct {
	Path        string              `json:"-"`
	Environment string              `json:"environment"`
	Makespan    *float64            `json:"makespan"`
	Robots      map[string]*Robot   `json:"robots"`
	GoalAreas   map[string]GoalArea `json:"goal_areas"`
	// Obstacles and Collisions are only drawn, never measured.
	Obstacles  json.RawMessage `json:"obstacles,omitempty"`
	Collisions json.RawMessage `json:"collisions,omitempty"`
}

// GoalArea records which robots reached it and when.
type GoalArea struct {
	History map[string]float64 `json:"history"`
}

// Load reads and decodes an export file.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse decodes an export already in memory. path is only used for error context.
func Parse(path string, data []byte) (*Run, error) {
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, &trace.FileError{Path: path, Wrapped: fmt.Errorf("%w: %v", trace.ErrMalformedInput, err)}
	}
	run.Path = path

	if run.Robots == nil {
		return nil, &trace.FileError{Path: path, Wrapped: fmt.Errorf("%w: missing robots", trace.ErrMalformedInput)}
	}
	if run.Makespan == nil {
		return nil, &trace.FileError{Path: path, Wrapped: fmt.Errorf("%w: missing makespan", trace.ErrMalformedInput)}
	}
	for id, r := range run.Robots {
		if r == nil {
			return nil, &trace.FileError{Path: path, Robot: id, Wrapped: fmt.Errorf("%w: null robot", trace.ErrMalformedInput)}
		}
		r.ID = id
	}

	return &run, nil
}

// MakespanSeconds returns the run makespan. Parse guarantees it is present.
func (r *Run) MakespanSeconds() float64 {
	if r.Makespan == nil {
		return 0
	}
	return *r.Makespan
}

// RobotIDs returns the robot ids in sorted order.
func (r *Run) RobotIDs() []string {
	ids := lo.Keys(r.Robots)
	sort.Strings(ids)
	return ids
}

// SortedRobots returns the robots ordered by id.
func (r *Run) SortedRobots() []*Robot {
	return lo.Map(r.RobotIDs(), func(id string, _ int) *Robot {
		return r.Robots[id]
	})
}

// ReachedGoal reports whether the robot appears in the history of any goal area.
func (r *Run) ReachedGoal(id string) bool {
	for _, area := range r.GoalAreas {
		if _, ok := area.History[id]; ok {
			return true
		}
	}
	return false
}

// Wrap attaches the run path and robot id to err.
func (r *Run) Wrap(robot string, err error) error {
	if err == nil {
		return nil
	}
	return &trace.FileError{Path: r.Path, Robot: robot, Wrapped: err}
}
