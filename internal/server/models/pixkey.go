package models

// PIX key types.
const (
	PixKeyCPF    = "cpf"
	PixKeyEmail  = "email"
	PixKeyRandom = "aleatoria"
)

// PixKey is an alternate account identifier. It is only ever resolved to the
// owning client's primary account; it carries no balance of its own.
type PixKey struct {
	ID       int64
	Type     string
	Key      string
	ClientID int64
}
