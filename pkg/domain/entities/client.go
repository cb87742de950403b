package entities

import "fmt"

// ClientType represents the commercial segment of a client
type ClientType string

const (
	ClientSocial    ClientType = "social"
	ClientCorporate ClientType = "corporativo"
)

// String method for ClientType enum
func (c ClientType) String() string {
	switch c {
	case ClientSocial, ClientCorporate:
		return string(c)
	default:
		return "unknown"
	}
}

// IsValid reports whether the client type is one of the known segments
func (c ClientType) IsValid() bool {
	return c == ClientSocial || c == ClientCorporate
}

// Client represents the customer a quote is prepared for
type Client struct {
	ID   string
	Name string
	Type ClientType
}

// NewClient creates a validated Client
func NewClient(id, name string, clientType ClientType) (*Client, error) {
	if id == "" {
		return nil, fmt.Errorf("client id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("client name cannot be empty")
	}
	if !clientType.IsValid() {
		return nil, fmt.Errorf("unknown client type: %q", string(clientType))
	}

	return &Client{
		ID:   id,
		Name: name,
		Type: clientType,
	}, nil
}
