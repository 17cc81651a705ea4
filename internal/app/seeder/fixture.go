package seeder

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
	"github.com/heartmarshall/campusconnect-backend/internal/service/submission"
)

// Fixture is the on-disk seed document.
type Fixture struct {
	Submissions []FixtureSubmission `yaml:"submissions"`
	Subscribers []string            `yaml:"subscribers"`
}

// FixtureSubmission mirrors the create endpoint body. Tags accept either a
// comma-joined string or a list.
type FixtureSubmission struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Location    string      `yaml:"location"`
	Category    string      `yaml:"category"`
	Date        string      `yaml:"date"`
	Time        string      `yaml:"time"`
	TBA         bool        `yaml:"tba"`
	Tags        domain.Tags `yaml:"tags"`
	Votes       int         `yaml:"votes"`
}

func (f FixtureSubmission) input() submission.CreateInput {
	return submission.CreateInput{
		Title:       f.Title,
		Description: f.Description,
		Location:    f.Location,
		Category:    f.Category,
		Date:        f.Date,
		Time:        f.Time,
		TBA:         f.TBA,
		Tags:        []string(f.Tags),
		Votes:       f.Votes,
	}
}

// ReadFixture decodes a fixture document. Unknown keys are rejected.
func ReadFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// LoadFixture reads and decodes the fixture file at path.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	f, err := ReadFixture(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return f, nil
}
