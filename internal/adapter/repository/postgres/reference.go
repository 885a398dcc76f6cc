package postgres

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/condorpay/banking/internal/domain"
)

const referenceSuffixLen = 8

// CodeGenerator implements usecase.ReferenceGenerator with ULID entropy.
// Suffix collisions are possible in principle; the unique constraint on
// transactions.reference catches them and the caller regenerates.
type CodeGenerator struct{}

// NewCodeGenerator creates a new CodeGenerator.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// NewReference builds a transaction reference such as TRF-2026-4R9X2K7M.
func (g *CodeGenerator) NewReference(kind domain.TransactionType) string {
	prefix := "TRF"
	if kind == domain.TransactionTypeTopUp {
		prefix = "RCG"
	}

	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UTC().Year(), suffix())
}

// NewTopUpCode builds a carrier-prefixed top-up code such as CLA-RCG-2026-4R9X2K7M.
func (g *CodeGenerator) NewTopUpCode(carrier domain.Carrier) string {
	return fmt.Sprintf("%s-RCG-%d-%s", carrier.ShortCode(), time.Now().UTC().Year(), suffix())
}

// NewConfirmationCode builds a carrier confirmation code such as CONF-2026-CLARO-4R9X2K7M.
func (g *CodeGenerator) NewConfirmationCode(carrier domain.Carrier) string {
	return fmt.Sprintf("CONF-%d-%s-%s", time.Now().UTC().Year(), carrier.Code, suffix())
}

// suffix returns the trailing characters of a fresh ULID, which hold its
// random entropy rather than the timestamp.
func suffix() string {
	id := ulid.Make().String()
	return id[len(id)-referenceSuffixLen:]
}
