package qr

import (
	"go.uber.org/fx"

	"github.com/fideleatome/loyalty/internal/config"
)

// Module provides QR payload codec and signed token issuer.
var Module = fx.Options(
	fx.Provide(func() Codec { return Codec{} }),
	fx.Provide(newTokenIssuer),
)

type issuerParams struct {
	fx.In

	Config *config.Config
}

func newTokenIssuer(p issuerParams) *TokenIssuer {
	return NewTokenIssuer(p.Config.QRSecret, p.Config.QRTokenTTL)
}
