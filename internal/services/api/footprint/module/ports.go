package module

import (
	"footprint/internal/services/api/footprint/domain"
)

// Ports exposes the footprint service to other modules
type Ports struct {
	Checker domain.ServicePort
}
