package domain

import (
	"context"
	"time"
)

// Sport is a reference entry events are categorized by.
// swagger:model Sport
type Sport struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ExperienceLevel is the skill level an event targets (e.g. beginner, advanced).
// swagger:model ExperienceLevel
type ExperienceLevel struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Equipment is a catalog item. SportID is 0 for general gear.
// swagger:model Equipment
type Equipment struct {
	ID      int    `json:"id"`
	SportID int    `json:"sport_id,omitempty"`
	Name    string `json:"name"`
}

// UserEquipment is a catalog item a user has listed as owned.
// swagger:model UserEquipment
type UserEquipment struct {
	Equipment
	AddedAt time.Time `json:"added_at"`
}

// ReferenceRepository reads static reference data.
type ReferenceRepository interface {
	ListSports(ctx context.Context) ([]*Sport, error)
	ListExperienceLevels(ctx context.Context) ([]*ExperienceLevel, error)
}

// ReferenceService exposes reference data to clients building event forms and filters.
type ReferenceService interface {
	ListSports(ctx context.Context) ([]*Sport, error)
	ListExperienceLevels(ctx context.Context) ([]*ExperienceLevel, error)
}

// ReferenceCache holds reference lists, which change only through migrations.
// Implementations may be disabled, in which case Get always misses.
type ReferenceCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any) error
}

// EquipmentRepository reads the equipment catalog and stores what each user owns.
type EquipmentRepository interface {
	ListCatalog(ctx context.Context) ([]*Equipment, error)
	GetByID(ctx context.Context, id int) (*Equipment, error)
	// AddForUser records ownership; adding an item the user already owns is a no-op.
	AddForUser(ctx context.Context, userID string, equipmentID int, at time.Time) error
	ListByUser(ctx context.Context, userID string) ([]*UserEquipment, error)
}

// EquipmentService browses the catalog and manages a user's own equipment.
type EquipmentService interface {
	// ListEquipment returns the catalog, narrowed to one sport (plus general gear) when sportID is set.
	ListEquipment(ctx context.Context, sportID *int) ([]*Equipment, error)
	AddUserEquipment(ctx context.Context, userID string, equipmentID int) ([]*UserEquipment, error)
	ListUserEquipment(ctx context.Context, userID string) ([]*UserEquipment, error)
}
