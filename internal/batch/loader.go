package batch

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kubev2v/taskpool/internal/models"
	srvErrors "github.com/kubev2v/taskpool/pkg/errors"
)

type fileBatch struct {
	Name    string     `yaml:"name"`
	Mode    string     `yaml:"mode"`
	Workers int        `yaml:"workers"`
	Tasks   []fileTask `yaml:"tasks"`
}

type fileTask struct {
	Name    string   `yaml:"name"`
	Command []string `yaml:"command"`
	Dir     string   `yaml:"dir"`
	Env     []string `yaml:"env"`
	Timeout string   `yaml:"timeout"`
	Retries uint     `yaml:"retries"`
}

// Load reads a batch file from disk.
func Load(path string) (models.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Batch{}, fmt.Errorf("failed to read batch file %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML batch definition.
func Parse(data []byte) (models.Batch, error) {
	var fb fileBatch
	if err := yaml.Unmarshal(data, &fb); err != nil {
		return models.Batch{}, srvErrors.NewBatchValidationError("%v", err)
	}

	mode, err := models.ParseBatchMode(fb.Mode)
	if err != nil {
		return models.Batch{}, srvErrors.NewBatchValidationError("%v", err)
	}
	if fb.Workers < 0 {
		return models.Batch{}, srvErrors.NewBatchValidationError("workers must not be negative, got %d", fb.Workers)
	}
	if len(fb.Tasks) == 0 {
		return models.Batch{}, srvErrors.NewBatchValidationError("no tasks defined")
	}

	b := models.Batch{
		Name:    fb.Name,
		Mode:    mode,
		Workers: fb.Workers,
		Tasks:   make([]models.CommandSpec, 0, len(fb.Tasks)),
	}

	for i, t := range fb.Tasks {
		if len(t.Command) == 0 || t.Command[0] == "" {
			return models.Batch{}, srvErrors.NewBatchValidationError("task %d has no command", i)
		}

		spec := models.CommandSpec{
			Name:    t.Name,
			Command: t.Command,
			Dir:     t.Dir,
			Env:     t.Env,
			Retries: t.Retries,
		}
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("task-%d", i)
		}
		if t.Timeout != "" {
			d, err := time.ParseDuration(t.Timeout)
			if err != nil || d < 0 {
				return models.Batch{}, srvErrors.NewBatchValidationError("task %q has an invalid timeout %q", spec.Name, t.Timeout)
			}
			spec.Timeout = d
		}

		b.Tasks = append(b.Tasks, spec)
	}

	return b, nil
}
