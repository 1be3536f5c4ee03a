package compose

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// CheckStatus classifies a doctor check result.
type CheckStatus string

const (
	// CheckOK means the check passed.
	CheckOK CheckStatus = "ok"

	// CheckWarn means the environment works but is degraded.
	CheckWarn CheckStatus = "warn"

	// CheckFail means the environment cannot run the project.
	CheckFail CheckStatus = "fail"
)

// Minimum host resources for a usable local environment.
const (
	minMemoryBytes = uint64(2) << 30
	minDiskBytes   = uint64(5) << 30
)

// Check is one doctor diagnostic result.
type Check struct {
	Name   string      `json:"name" yaml:"name"`
	Status CheckStatus `json:"status" yaml:"status"`
	Detail string      `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Doctor runs the environment diagnostics. A nil api marks the daemon
// check failed without aborting the remaining checks.
func (p *Project) Doctor(ctx context.Context, api DockerAPI) []Check {
	return []Check{
		p.checkBinary("docker", CheckFail),
		p.checkBinary("composer", CheckWarn),
		p.checkDaemon(ctx, api),
		p.checkComposeFile(),
		p.checkMemory(ctx),
		p.checkDisk(ctx),
	}
}

// Failed reports whether any check has failed outright.
func Failed(checks []Check) bool {
	for _, check := range checks {
		if check.Status == CheckFail {
			return true
		}
	}

	return false
}

func (p *Project) checkBinary(name string, missing CheckStatus) Check {
	check := Check{Name: name + " binary"}

	path, err := exec.LookPath(name)
	if err != nil {
		check.Status = missing
		check.Detail = name + " not found in PATH"

		return check
	}

	check.Status = CheckOK
	check.Detail = path

	return check
}

func (p *Project) checkDaemon(ctx context.Context, api DockerAPI) Check {
	check := Check{Name: "docker daemon"}

	if api == nil {
		check.Status = CheckFail
		check.Detail = "docker client could not be created"

		return check
	}

	ping, err := api.Ping(ctx)
	if err != nil {
		check.Status = CheckFail
		check.Detail = fmt.Sprintf("daemon unreachable: %v", err)

		return check
	}

	check.Status = CheckOK
	check.Detail = "API " + ping.APIVersion

	return check
}

func (p *Project) checkComposeFile() Check {
	check := Check{Name: "compose file"}

	if _, err := os.Stat(p.File); err != nil {
		check.Status = CheckFail
		check.Detail = fmt.Sprintf("%s not found, run shepctl init", p.File)

		return check
	}

	check.Status = CheckOK
	check.Detail = p.File

	return check
}

func (p *Project) checkMemory(ctx context.Context) Check {
	check := Check{Name: "host memory"}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		check.Status = CheckWarn
		check.Detail = fmt.Sprintf("could not read memory stats: %v", err)

		return check
	}

	check.Detail = fmt.Sprintf("%.1f GiB total", gib(vm.Total))
	if vm.Total < minMemoryBytes {
		check.Status = CheckWarn
		check.Detail += fmt.Sprintf(", below the %.0f GiB minimum", gib(minMemoryBytes))

		return check
	}

	check.Status = CheckOK

	return check
}

func (p *Project) checkDisk(ctx context.Context) Check {
	check := Check{Name: "disk space"}

	usage, err := disk.UsageWithContext(ctx, p.Dir)
	if err != nil {
		check.Status = CheckWarn
		check.Detail = fmt.Sprintf("could not read disk stats: %v", err)

		return check
	}

	check.Detail = fmt.Sprintf("%.1f GiB free", gib(usage.Free))
	if usage.Free < minDiskBytes {
		check.Status = CheckWarn
		check.Detail += fmt.Sprintf(", below the %.0f GiB minimum", gib(minDiskBytes))

		return check
	}

	check.Status = CheckOK

	return check
}

func gib(bytes uint64) float64 {
	return float64(bytes) / float64(1<<30)
}
