package wrappers

import (
	"context"
	"fmt"
)

// PackageChecker answers whether a package is installed on the host.
type PackageChecker interface {
	Installed(ctx context.Context, name string) (bool, error)
}

// RPMChecker queries the rpm database with `rpm -q`
type RPMChecker struct {
	Runner Runner
}

// Installed reports false with the query error when rpm says the package is missing
// or rpm itself cannot be run.
func (r *RPMChecker) Installed(ctx context.Context, name string) (bool, error) {
	if err := r.Runner.Run(ctx, nil, "rpm", "-q", "--quiet", name); err != nil {
		return false, fmt.Errorf("rpm query for %s: %w", name, err)
	}
	return true, nil
}
