package validation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"go.uber.org/zap"
)

const checkTimeout = 10 * time.Second

// Check reports whether one backing service is reachable
type Check func(ctx context.Context) error

// ServiceValidator verifies that the services listed as required are reachable
// before the server starts accepting traffic.
type ServiceValidator struct {
	requiredServices []string
	checks           map[string]Check
}

// NewServiceValidator creates a validator over the given checks. Names in
// required are matched case-insensitively against the check names.
func NewServiceValidator(required []string, checks map[string]Check) *ServiceValidator {
	normalized := make([]string, 0, len(required))
	for _, name := range required {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			normalized = append(normalized, name)
		}
	}
	return &ServiceValidator{
		requiredServices: normalized,
		checks:           checks,
	}
}

// ValidateServices runs the check of every required service and fails on the first error
func (sv *ServiceValidator) ValidateServices(ctx context.Context) error {
	if len(sv.requiredServices) == 0 {
		logger.Log.Info("No required services configured for validation")
		return nil
	}

	logger.Log.Info("Validating required services", zap.Strings("services", sv.requiredServices))

	for _, serviceName := range sv.requiredServices {
		check, ok := sv.checks[serviceName]
		if !ok {
			return fmt.Errorf("required service %q is not configured", serviceName)
		}

		timeoutCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := check(timeoutCtx)
		cancel()
		if err != nil {
			logger.Log.Error("Required service validation failed",
				zap.String("service", serviceName),
				zap.Error(err),
			)
			return fmt.Errorf("required service %q validation failed: %w", serviceName, err)
		}

		logger.Log.Info("Service validated", zap.String("service", serviceName))
	}

	return nil
}
