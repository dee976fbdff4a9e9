package internal

import (
	"testing"

	"github.com/kcmvp/archunit"
)

func TestArchitecture(t *testing.T) {
	domain := archunit.Packages("domain", []string{".../internal/domain/..."})
	ports := archunit.Packages("ports", []string{".../internal/ports"})
	adapters := archunit.Packages("adapters", []string{".../internal/adapters/..."})
	infra := archunit.Packages("infra", []string{".../internal/config", ".../internal/logging"})

	// Rule 1: Domain should not depend on adapters
	if err := domain.ShouldNotReferLayers(adapters); err != nil {
		t.Errorf("Architecture violation: Domain depends on Adapters: %v", err)
	}
	// Rule 2: Ports are contracts only
	if err := ports.ShouldNotReferLayers(adapters); err != nil {
		t.Errorf("Architecture violation: Ports depend on Adapters: %v", err)
	}
	// Rule 3: config and logging know nothing about devices
	if err := infra.ShouldNotReferLayers(domain); err != nil {
		t.Errorf("Architecture violation: config/logging depend on Domain: %v", err)
	}
	if err := infra.ShouldNotReferLayers(adapters); err != nil {
		t.Errorf("Architecture violation: config/logging depend on Adapters: %v", err)
	}
}

func TestLayersPresent(t *testing.T) {
	for name, path := range map[string]string{
		"translator": ".../internal/domain/translator",
		"service":    ".../internal/domain/service",
		"ports":      ".../internal/ports",
	} {
		if len(archunit.Packages(name, []string{path}).Packages()) == 0 {
			t.Errorf("No %s package found", name)
		}
	}
}
