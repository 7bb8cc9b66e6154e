package constants

// Context keys
const (
	ContextKeyUser = "current_user"
)

// Account states
const (
	UserStatusActive   = "Activo"
	UserStatusInactive = "Inactivo"
	UserStatusBlocked  = "Bloqueado"
)

// Role names (seeded at startup, matched case-insensitively)
const (
	RoleAdmin  = "Administrador"
	RoleLawyer = "Abogado"
)

// Contract identifier prefixes
const (
	PrefixContract = "CNT"
	PrefixTemplate = "PLT"
	PrefixClause   = "LIB"
)

// Contract kinds
const (
	KindContract = "contrato"
	KindClause   = "clausula"
	KindTemplate = "plantilla"
)

// Contract states tracked by the stats aggregator
const (
	ContractStatusDraft     = "BORRADOR"
	ContractStatusActive    = "ACTIVO"
	ContractStatusExpired   = "VENCIDO"
	ContractStatusCompleted = "TERMINADO"
)

// Payment kinds and states
const (
	PaymentKindSingle      = "UNICO"
	PaymentKindInstallment = "ABONO"
	PaymentStatusPending   = "PENDIENTE"
	PaymentStatusPaid      = "PAGADO"
	PaymentStatusOverdue   = "VENCIDO"
)

// Auth policy
const (
	MinPasswordLength  = 8
	MaxFailedAttempts  = 3
	ResetTokenLifetime = 30 // minutes
)

// Pagination
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)
