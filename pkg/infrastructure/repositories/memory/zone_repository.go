package memory

import (
	"fmt"

	"github.com/vsinha/eventquote/pkg/domain/entities"
	"github.com/vsinha/eventquote/pkg/domain/repositories"
)

// ZoneRepository provides in-memory transport zone storage
type ZoneRepository struct {
	zones    []entities.TransportZone
	zonesMap map[string]int
}

// NewZoneRepository creates a new in-memory zone repository
func NewZoneRepository(expectedZones int) *ZoneRepository {
	return &ZoneRepository{
		zones:    make([]entities.TransportZone, 0, expectedZones),
		zonesMap: make(map[string]int, expectedZones),
	}
}

// Verify interface compliance
var _ repositories.ZoneRepository = (*ZoneRepository)(nil)

// LoadZones loads zones into the repository
func (r *ZoneRepository) LoadZones(zones []*entities.TransportZone) error {
	for _, zone := range zones {
		if err := r.SaveZone(zone); err != nil {
			return err
		}
	}
	return nil
}

// SaveZone adds a zone, replacing any zone with the same id
func (r *ZoneRepository) SaveZone(zone *entities.TransportZone) error {
	if zone == nil || zone.ID == "" {
		return fmt.Errorf("zone id cannot be empty")
	}
	if index, exists := r.zonesMap[zone.ID]; exists {
		r.zones[index] = *zone
		return nil
	}
	r.zonesMap[zone.ID] = len(r.zones)
	r.zones = append(r.zones, *zone)
	return nil
}

// GetZone returns the zone with the given id
func (r *ZoneRepository) GetZone(zoneID string) (*entities.TransportZone, error) {
	index, exists := r.zonesMap[zoneID]
	if !exists {
		return nil, fmt.Errorf("zone not found: %s", zoneID)
	}
	zone := r.zones[index]
	return &zone, nil
}

// GetAllZones returns all zones in insertion order
func (r *ZoneRepository) GetAllZones() ([]*entities.TransportZone, error) {
	zones := make([]*entities.TransportZone, 0, len(r.zones))
	for i := range r.zones {
		zone := r.zones[i]
		zones = append(zones, &zone)
	}
	return zones, nil
}

// Count returns the number of zones stored
func (r *ZoneRepository) Count() int {
	return len(r.zones)
}
