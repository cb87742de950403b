package repositories

import "github.com/vsinha/eventquote/pkg/domain/entities"

// ZoneRepository provides access to the transport zone catalog
type ZoneRepository interface {
	GetZone(zoneID string) (*entities.TransportZone, error)
	GetAllZones() ([]*entities.TransportZone, error)
	LoadZones(zones []*entities.TransportZone) error
}
