package storage

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"taskflow/internal/task"
)

// collectionDoc is the on-disk shape of the store. A versioned wrapper keeps
// room for future migrations without breaking old files.
type collectionDoc struct {
	Version int          `yaml:"version"`
	Tasks   []*task.Task `yaml:"tasks"`
}

const collectionVersion = 1

// MarshalCollection serializes the task collection to the YAML document.
func MarshalCollection(tasks []*task.Task) ([]byte, error) {
	doc := collectionDoc{
		Version: collectionVersion,
		Tasks:   tasks,
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	enc.Close()
	return buf.Bytes(), nil
}

// UnmarshalCollection parses a YAML document back into the task collection.
func UnmarshalCollection(content []byte) ([]*task.Task, error) {
	var doc collectionDoc
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, &parseError{"invalid tasks file: " + err.Error()}
	}
	return doc.Tasks, nil
}

// parseError represents a collection parsing error.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}
