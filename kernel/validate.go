package kernel

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph/simple"
)

// resourceNode is the graph node ID of resource i. Tasks occupy IDs
// [0, ntasks).
func resourceNode(ntasks, i int) int64 {
	return int64(ntasks + i)
}

// validate checks the wiring table and returns its task->resource access
// graph. Every defect found is reported.
func validate(cfg Config) (*simple.DirectedGraph, error) {
	var errs []error

	if len(cfg.Tasks) == 0 {
		errs = append(errs, ErrNoTasks)
	}
	if len(cfg.Tasks) > MaxTasks {
		errs = append(errs, fmt.Errorf("%w: %d, at most %d", ErrTooManyTasks, len(cfg.Tasks), MaxTasks))
	}

	taskNames := map[string]bool{}
	irqs := map[IRQ]string{}
	for _, t := range cfg.Tasks {
		if taskNames[t.Name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateTask, t.Name))
		}
		taskNames[t.Name] = true

		if other, ok := irqs[t.IRQ]; ok {
			errs = append(errs, fmt.Errorf("%w: irq %d used by %s and %s", ErrDuplicateIRQ, t.IRQ, other, t.Name))
		} else {
			irqs[t.IRQ] = t.Name
		}

		if t.Priority == IdlePriority || t.Priority > MaxPriority {
			errs = append(errs, fmt.Errorf("%w: %s has priority %d, expected 1..%d", ErrInvalidPriority, t.Name, t.Priority, MaxPriority))
		}
		if t.Run == nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNilTask, t.Name))
		}
	}

	resources := map[string]int{}
	for i, r := range cfg.Resources {
		if _, ok := resources[r.Name()]; ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateResource, r.Name()))
			continue
		}
		resources[r.Name()] = i
		if r.bound() != nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrResourceBound, r.Name()))
		}
	}

	g := simple.NewDirectedGraph()
	for i := range cfg.Tasks {
		g.AddNode(simple.Node(i))
	}
	for i := range cfg.Resources {
		g.AddNode(simple.Node(resourceNode(len(cfg.Tasks), i)))
	}
	for i, t := range cfg.Tasks {
		for _, name := range t.Resources {
			j, ok := resources[name]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s used by %s", ErrUnknownResource, name, t.Name))
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(resourceNode(len(cfg.Tasks), j))))
		}
	}

	for _, name := range sortedKeys(resources) {
		i := resources[name]
		r := cfg.Resources[i]
		required, users := requiredCeiling(g, cfg.Tasks, resourceNode(len(cfg.Tasks), i))
		if r.Ceiling() < required {
			errs = append(errs, fmt.Errorf("%w: %s has ceiling %d, %v need %d", ErrCeilingTooLow, name, r.Ceiling(), users, required))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return g, nil
}

// requiredCeiling derives the ceiling of a resource from the priorities of
// the tasks with an edge into it.
func requiredCeiling(g *simple.DirectedGraph, tasks []Task, resource int64) (Priority, []string) {
	var ceiling Priority
	var users []string
	it := g.To(resource)
	for it.Next() {
		t := tasks[it.Node().ID()]
		users = append(users, t.Name)
		if t.Priority > ceiling {
			ceiling = t.Priority
		}
	}
	slices.Sort(users)
	return ceiling, users
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

type TaskReport struct {
	Name      string   `yaml:"name"`
	IRQ       IRQ      `yaml:"irq"`
	Priority  Priority `yaml:"priority"`
	Resources []string `yaml:"resources"`
}

type ResourceReport struct {
	Name     string   `yaml:"name"`
	Ceiling  Priority `yaml:"ceiling"`
	Required Priority `yaml:"required"`
	Tasks    []string `yaml:"tasks"`
}

type Analysis struct {
	Tasks     []TaskReport     `yaml:"tasks"`
	Resources []ResourceReport `yaml:"resources"`
}

// Analyze reports the wiring of the kernel and the ceiling each resource
// needs. A declared ceiling above the required one is legal but blocks more
// tasks than necessary.
func (k *Kernel) Analyze() Analysis {
	var a Analysis
	tasks := make([]Task, k.ntasks)
	for i := 0; i < k.ntasks; i++ {
		t := k.tasks[i].Task
		tasks[i] = t
		res := slices.Clone(t.Resources)
		slices.Sort(res)
		a.Tasks = append(a.Tasks, TaskReport{Name: t.Name, IRQ: t.IRQ, Priority: t.Priority, Resources: res})
	}

	byName := map[string]int{}
	for i, r := range k.resources {
		byName[r.Name()] = i
	}
	for _, name := range sortedKeys(byName) {
		i := byName[name]
		required, users := requiredCeiling(k.access, tasks, resourceNode(k.ntasks, i))
		a.Resources = append(a.Resources, ResourceReport{
			Name:     name,
			Ceiling:  k.resources[i].Ceiling(),
			Required: required,
			Tasks:    users,
		})
	}
	return a
}
