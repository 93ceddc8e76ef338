//go:build unix || darwin

package convert

import (
	"errors"
	"os"
	"syscall"
)

// classifyStatDetail maps a stat-phase error into a JTO-102 detail code.
func classifyStatDetail(err error) string {
	if os.IsNotExist(err) {
		return "JTO-102-1"
	}
	if errors.Is(err, syscall.ENOTDIR) {
		return "JTO-102-3"
	}
	if errors.Is(err, syscall.ELOOP) {
		return "JTO-102-4"
	}
	if errors.Is(err, syscall.ENAMETOOLONG) {
		return "JTO-102-5"
	}
	if errors.Is(err, os.ErrPermission) {
		return "JTO-102-101"
	}
	return "JTO-102-201"
}
