package module

import "paysplit/internal/services/api/seller/domain"

// Ports is the port set other modules can pull with module.PortsOf
type Ports struct {
	Service domain.ServicePort
	Config  domain.ConfigPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
