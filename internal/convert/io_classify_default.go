//go:build !unix && !darwin

package convert

import (
	"errors"
	"os"
)

// classifyStatDetail provides a conservative fallback mapping on non-Unix builds.
func classifyStatDetail(err error) string {
	if os.IsNotExist(err) {
		return "JTO-102-1"
	}
	if errors.Is(err, os.ErrPermission) {
		return "JTO-102-101"
	}
	return "JTO-102-201"
}
