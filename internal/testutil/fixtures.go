// Package testutil provides fixture types and helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastypes/contract"
)

// Color is an integer enum declared through contract.Enumer.
type Color int

const (
	Red Color = iota
	Green
	Blue
)

// EnumMembers implements contract.Enumer.
func (Color) EnumMembers() []contract.EnumMember {
	return []contract.EnumMember{
		{Name: "Red", Value: Red},
		{Name: "Green", Value: Green},
		{Name: "Blue", Value: Blue},
	}
}

// Status is a string enum.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// EnumMembers implements contract.Enumer.
func (Status) EnumMembers() []contract.EnumMember {
	return []contract.EnumMember{
		{Name: "Active", Value: StatusActive},
		{Name: "Suspended", Value: StatusSuspended},
	}
}

// Priority is an integer enum with an alias member sharing a value.
type Priority int32

// EnumMembers implements contract.Enumer.
func (Priority) EnumMembers() []contract.EnumMember {
	return []contract.EnumMember{
		{Name: "Low", Value: Priority(1)},
		{Name: "Normal", Value: Priority(2)},
		{Name: "Default", Value: Priority(2)},
		{Name: "High", Value: Priority(3)},
	}
}

// Level is an integer enum that serializes itself as its name.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
)

// EnumMembers implements contract.Enumer.
func (Level) EnumMembers() []contract.EnumMember {
	return []contract.EnumMember{
		{Name: "Debug", Value: LevelDebug},
		{Name: "Info", Value: LevelInfo},
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	switch l {
	case LevelDebug:
		return []byte("Debug"), nil
	case LevelInfo:
		return []byte("Info"), nil
	}
	return nil, fmt.Errorf("unknown level %d", int(l))
}

// Order is the root of the order scenario.
type Order struct {
	ID        uuid.UUID           `json:"id"`
	Customer  string              `json:"customer" validate:"required,min=1,max=100"`
	Lines     []OrderLine         `json:"lines"`
	Status    Status              `json:"status" default:"active"`
	Priority  Priority            `json:"priority,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	Total     decimal.Decimal     `json:"total"`
	Notes     *string             `json:"notes,omitempty" oas:"description=Free text"`
	Tags      map[string]struct{} `json:"tags,omitempty"`
	Internal  string              `json:"-"`
}

// OrderLine is a line of an Order.
type OrderLine struct {
	SKU      string  `json:"sku" validate:"required"`
	Quantity int     `json:"quantity" validate:"min=1,max=10"`
	Price    float64 `json:"price" oas:"minimum=0"`
	Color    Color   `json:"color,omitempty"`
}

// Node is self-referential through a pointer, a slice and a map.
type Node struct {
	Value    int              `json:"value"`
	Next     *Node            `json:"next,omitempty"`
	Children []Node           `json:"children,omitempty"`
	Index    map[string]*Node `json:"index,omitempty"`
}

// Employee and Manager reference each other.
type Employee struct {
	Name    string   `json:"name"`
	Manager *Manager `json:"manager,omitempty"`
}

// Manager lists its reports.
type Manager struct {
	Name    string     `json:"name"`
	Reports []Employee `json:"reports"`
}

// Animal is a polymorphic base with two subtypes.
type Animal struct {
	Name string `json:"name"`
}

// SubTypes implements contract.SubTyper.
func (Animal) SubTypes() []any {
	return []any{Cat{}, Dog{}}
}

// Cat derives from Animal.
type Cat struct {
	Animal
	Lives int `json:"lives"`
}

// Dog derives from Animal.
type Dog struct {
	Animal
	GoodBoy bool `json:"goodBoy"`
}

// Audit is a mixin flattened into its embedders.
type Audit struct {
	CreatedBy string `json:"createdBy"`
}

// Invoice embeds a mixin that is not its base.
type Invoice struct {
	Audit  `oas:"inline"`
	Number string `json:"number"`
}

// Palette is keyed by an enum.
type Palette map[Color]string

// Score carries numeric validation.
type Score struct {
	Value int `json:"value" validate:"required,min=1,max=10"`
}

// Page is a generic container.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Pair is a generic with two type arguments.
type Pair[K comparable, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// WriteTempYAML marshals v to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, v any) string {
	t.Helper()

	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal value to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", data)
}

// WriteTempFile writes data to a named file in a temporary directory.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
