// Package vscode generates the VS Code task descriptor that wires the
// firmware lifecycle commands into the editor.
package vscode

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dominikbraun/graph"
)

// Task is a single VS Code shell task.
type Task struct {
	Label     string `json:"label"`
	Type      string `json:"type"`
	Command   string `json:"command"`
	DependsOn string `json:"dependsOn,omitempty"`
}

// TasksFile is the tasks.json document.
type TasksFile struct {
	Version string `json:"version"`
	Tasks   []Task `json:"tasks"`
}

// DefaultTasks returns the four lifecycle tasks wired to the embedded
// orchestrator copy. Flash depends on Compile so flashing from the
// editor always writes a fresh image.
func DefaultTasks(orchestrator string) TasksFile {
	return TasksFile{
		Version: "2.0.0",
		Tasks: []Task{
			{Label: "Setup", Type: "shell", Command: orchestrator + " setup"},
			{Label: "Compile", Type: "shell", Command: orchestrator + " compile"},
			{Label: "Flash", Type: "shell", Command: orchestrator + " flash", DependsOn: "Compile"},
			{Label: "Reset", Type: "shell", Command: orchestrator + " reset"},
		},
	}
}

// Validate checks that task labels are unique and that every dependsOn
// reference resolves to a task without forming a cycle.
func (f TasksFile) Validate() error {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	for _, task := range f.Tasks {
		if task.Label == "" {
			return errors.New("task label cannot be empty")
		}
		if err := g.AddVertex(task.Label); err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				return fmt.Errorf("duplicate task label %q", task.Label)
			}
			return err
		}
	}

	for _, task := range f.Tasks {
		if task.DependsOn == "" {
			continue
		}
		if err := g.AddEdge(task.DependsOn, task.Label); err != nil {
			if errors.Is(err, graph.ErrVertexNotFound) {
				return fmt.Errorf("task %q depends on unknown task %q", task.Label, task.DependsOn)
			}
			if errors.Is(err, graph.ErrEdgeCreatesCycle) {
				return fmt.Errorf("task %q creates a dependency cycle", task.Label)
			}
			return err
		}
	}

	return nil
}

// Write validates the task set and serializes it to path.
func Write(path string, f TasksFile) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid task set: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
