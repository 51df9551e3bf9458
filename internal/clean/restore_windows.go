//go:build windows

package clean

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

const restorePointTimeout = 3 * time.Minute

// CreateRestorePoint asks System Restore for a checkpoint before cleaning.
func CreateRestorePoint(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, restorePointTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-ExecutionPolicy", "Bypass", "-Command",
		`Checkpoint-Computer -Description "CleanTool" -RestorePointType "MODIFY_SETTINGS"`)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("checkpoint-computer: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
