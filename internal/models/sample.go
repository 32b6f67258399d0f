package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SampleCard mirrors the generation payload for one flashcard.
type SampleCard struct {
	Front string `yaml:"front"`
	Back  string `yaml:"back"`
	Topic string `yaml:"topic,omitempty"`
}

// SampleQuestion mirrors the generation payload for one quiz question.
type SampleQuestion struct {
	Question     string   `yaml:"question"`
	Options      []string `yaml:"options"`
	CorrectIndex int      `yaml:"correct_index"`
	Explanation  string   `yaml:"explanation"`
	Topic        string   `yaml:"topic,omitempty"`
}

// SampleContent is a canned study set used to seed development databases
// through the same validation path as generated content.
type SampleContent struct {
	Subject    string       `yaml:"subject"`
	Flashcards []SampleCard `yaml:"flashcards"`
	Quiz       struct {
		Title     string           `yaml:"title"`
		Questions []SampleQuestion `yaml:"questions"`
	} `yaml:"quiz"`
}

// LoadSampleContent reads and parses a sample content YAML file.
func LoadSampleContent(path string) (*SampleContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample content file: %w", err)
	}

	var content SampleContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sample content YAML: %w", err)
	}

	return &content, nil
}
