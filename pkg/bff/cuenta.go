package bff

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// CuentaClient resolves bank and account-type labels to their numeric
// codes using the account BFF reference endpoint.
type CuentaClient struct {
	url string
	t   *transport

	banks        []ReferenceItem
	accountTypes []ReferenceItem
}

type accountReference struct {
	Banks        []ReferenceItem `json:"banks"`
	AccountTypes []ReferenceItem `json:"accountTypes"`
}

// NewCuentaClient creates a client for the account reference endpoint.
func NewCuentaClient(url, token string, opts ...Option) *CuentaClient {
	return &CuentaClient{
		url: url,
		t:   newTransport(token, opts...),
	}
}

// Load fetches the bank and account-type reference lists. It must be
// called before any lookup.
func (c *CuentaClient) Load(ctx context.Context) error {
	var ref accountReference
	if err := c.t.getJSON(ctx, c.url, &ref); err != nil {
		return eris.Wrap(err, "bff: fetch account reference data")
	}
	c.banks = ref.Banks
	c.accountTypes = ref.AccountTypes
	zap.L().Info("información de cuentas obtenida con éxito",
		zap.Int("banks", len(c.banks)),
		zap.Int("account_types", len(c.accountTypes)),
	)
	return nil
}

// BankCode resolves a bank name to its code, trying an exact
// case-insensitive match first and a substring match second.
func (c *CuentaClient) BankCode(bank string) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(bank))
	if needle == "" {
		return 0, false
	}

	for _, item := range c.banks {
		if strings.ToLower(item.Name) == needle {
			return item.Code, true
		}
	}
	for _, item := range c.banks {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			return item.Code, true
		}
	}
	return 0, false
}

// AccountTypeCode resolves an account-type label to its code with an exact
// case-insensitive match.
func (c *CuentaClient) AccountTypeCode(accountType string) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(accountType))
	if needle == "" {
		return 0, false
	}

	for _, item := range c.accountTypes {
		if strings.ToLower(item.Name) == needle {
			return item.Code, true
		}
	}
	return 0, false
}
