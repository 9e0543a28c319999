package volcado

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pagoandino/capture-cli/internal/model"
)

// AccountLookup resolves bank and account-type labels to codes.
type AccountLookup interface {
	BankCode(bank string) (int, bool)
	AccountTypeCode(accountType string) (int, bool)
}

// ActivityLookup resolves economic activity labels and their MCC mapping.
type ActivityLookup interface {
	ActivityCode(activity string) (int, bool)
	GiroMCC(ctx context.Context, activityCode int) (mcc, giro int, err error)
}

// Builder converts a consolidated result set into the integration payload.
// Lookup failures never abort the build; the affected code is left null so
// the payload consumer can flag it.
type Builder struct {
	accounts   AccountLookup
	activities ActivityLookup
	user       string
}

// NewBuilder creates a Builder. user identifies the operator performing
// the affiliation on downstream entities.
func NewBuilder(accounts AccountLookup, activities ActivityLookup, user string) *Builder {
	return &Builder{
		accounts:   accounts,
		activities: activities,
		user:       user,
	}
}

// Build assembles the payload from the result set. The commerce RUT is
// required; everything else degrades to empty or null values.
func (b *Builder) Build(ctx context.Context, results model.ResultSet) (*EntidadesVolcado, error) {
	rut := fieldValue(results, "rut_comercio")
	if rut == "" {
		return nil, eris.New("volcado: rut_comercio is required to build the payload")
	}

	address := splitAddress(fieldValue(results, "direccion_comercio"))
	names, lastName, secondLastName := splitFullName(fieldValue(results, "nombre_contacto"))

	bankCode := b.lookupBank(fieldValue(results, "banco"))
	accountType := b.lookupAccountType(fieldValue(results, "tipo_cuenta"))
	businessLine, idMcc := b.lookupActivity(ctx, fieldValue(results, "actividad_economica"))

	commerce := IntegrationCommerce{
		CommerceRut:        rut,
		BusinessName:       fieldValue(results, "razon_social"),
		BusinessLine:       businessLine,
		Origin:             "capture",
		Email:              fieldValue(results, "correo_contacto"),
		EmailPayment:       fieldValue(results, "correo_contacto"),
		FantasyName:        fieldValue(results, "nombre_fantasia"),
		Name:               names,
		LastName:           lastName,
		MothersLastName:    secondLastName,
		MobilePhoneNumber:  fieldValue(results, "telefono_contacto"),
		SellerRut:          rut,
		IntegrationAddress: address,
		Obs:                fieldValue(results, "constitucion"),
	}

	account := IntegrationBankAccount{
		CommerceRut:        rut,
		BankCode:           bankCode,
		OwnerFullName:      fieldValue(results, "nombre_cuenta"),
		OwnerRut:           rut,
		OwnerEmail:         fieldValue(results, "correo_contacto"),
		User:               b.user,
		AccountType:        accountType,
		OwnerAccountNumber: fieldValue(results, "num_cuenta"),
		PaymentType:        "deposit",
	}

	contact := IntegrationContact{
		CommerceRut:         rut,
		LegalRepresentative: sameName(fieldValue(results, "nombre_contacto"), fieldValue(results, "representante_legal")),
		Names:               names,
		LastName:            lastName,
		SecondLastName:      secondLastName,
		Rut:                 fieldValue(results, "rut_contacto"),
		Email:               fieldValue(results, "correo_contacto"),
		Phone:               fieldValue(results, "telefono_contacto"),
		SerialNumber:        fieldValue(results, "num_serie"),
		Sign:                true,
		SignAllowed:         true,
	}

	branch := IntegrationBranch{
		MainBranch:                       true,
		IntegrationAddress:               address,
		BusinessName:                     fieldValue(results, "razon_social"),
		CommerceRut:                      rut,
		Email:                            fieldValue(results, "correo_contacto"),
		FantasyName:                      fieldValue(results, "nombre_fantasia"),
		Description:                      fieldValue(results, "actividad_economica"),
		IDMcc:                            idMcc,
		MobilePhoneNumber:                fieldValue(results, "telefono_contacto"),
		Name:                             fieldValue(results, "nombre_fantasia"),
		BankAccount:                      fieldValue(results, "num_cuenta"),
		User:                             b.user,
		EmailContact:                     fieldValue(results, "correo_contacto"),
		CommerceContactName:              fieldValue(results, "nombre_contacto"),
		CommerceLegalRepresentativeName:  fieldValue(results, "representante_legal"),
		CommerceLegalRepresentativeRut:   fieldValue(results, "rut_contacto"),
		CommerceLegalRepresentativePhone: fieldValue(results, "telefono_contacto"),
		IntegrationTerminals:             []IntegrationTerminal{},
	}

	return &EntidadesVolcado{
		IntegrationCommerce:    commerce,
		IntegrationBankAccount: account,
		IntegrationContact:     contact,
		IntegrationBranches:    []IntegrationBranch{branch},
	}, nil
}

func (b *Builder) lookupBank(bank string) *int {
	if bank == "" {
		return nil
	}
	code, ok := b.accounts.BankCode(bank)
	if !ok {
		zap.L().Warn("no se encontró código para el banco", zap.String("bank", bank))
		return nil
	}
	return &code
}

func (b *Builder) lookupAccountType(accountType string) *int {
	if accountType == "" {
		return nil
	}
	code, ok := b.accounts.AccountTypeCode(accountType)
	if !ok {
		zap.L().Warn("no se encontró código para el tipo de cuenta", zap.String("account_type", accountType))
		return nil
	}
	return &code
}

func (b *Builder) lookupActivity(ctx context.Context, activity string) (businessLine, idMcc *int) {
	if activity == "" {
		return nil, nil
	}
	code, ok := b.activities.ActivityCode(activity)
	if !ok {
		zap.L().Warn("no se encontró código para la actividad económica", zap.String("activity", activity))
		return nil, nil
	}

	mcc, giro, err := b.activities.GiroMCC(ctx, code)
	if err != nil {
		zap.L().Warn("no se pudo obtener mcc para la actividad",
			zap.Int("activity_code", code),
			zap.Error(err),
		)
		return nil, nil
	}
	return &giro, &mcc
}

// fieldValue returns the committed single value for a field, or empty.
// Unresolved multi-value conflicts yield the first candidate.
func fieldValue(results model.ResultSet, field string) string {
	node, ok := results[field]
	if !ok || node.Value.IsNull() {
		return ""
	}
	return strings.TrimSpace(node.Value.Single())
}

// splitFullName splits a full personal name into first names, paternal
// surname, and maternal surname following the Chilean convention of the
// last two tokens being surnames.
func splitFullName(full string) (names, lastName, secondLastName string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", "", ""
	case 1:
		return parts[0], "", ""
	case 2:
		return parts[0], parts[1], ""
	default:
		return strings.Join(parts[:len(parts)-2], " "), parts[len(parts)-2], parts[len(parts)-1]
	}
}

// splitAddress breaks "Teatinos 500, Santiago, RM" into a street number,
// the street without its number, and the comma-separated components.
func splitAddress(full string) IntegrationAddress {
	addr := IntegrationAddress{FullAddress: []string{}}
	if strings.TrimSpace(full) == "" {
		return addr
	}

	for _, part := range strings.Split(full, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			addr.FullAddress = append(addr.FullAddress, trimmed)
		}
	}
	if len(addr.FullAddress) == 0 {
		return addr
	}

	street := addr.FullAddress[0]
	fields := strings.Fields(street)
	if len(fields) > 1 && isNumeric(fields[len(fields)-1]) {
		addr.Number = fields[len(fields)-1]
		addr.AddressWithoutNumber = strings.Join(fields[:len(fields)-1], " ")
	} else {
		addr.AddressWithoutNumber = street
	}
	return addr
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func sameName(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
