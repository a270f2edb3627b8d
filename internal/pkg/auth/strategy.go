package auth

import (
	"time"

	"github.com/fideleatome/loyalty/internal/domain/model"
)

// Strategy issues and verifies bearer tokens carrying account identity and
// role. Implementations are selected by configuration.
type Strategy interface {
	IssueToken(userID int64, role model.Role) (string, error)
	ParseToken(token string) (int64, model.Role, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
