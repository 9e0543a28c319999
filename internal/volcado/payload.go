// Package volcado builds and publishes the downstream integration payload
// from a consolidated capture result set.
package volcado

// IntegrationAddress models the address structure shared by the commerce
// and branch entities.
type IntegrationAddress struct {
	Region               int      `json:"region"`
	Comune               int      `json:"comune"`
	Number               string   `json:"number"`
	FullAddress          []string `json:"fullAddress"`
	AddressWithoutNumber string   `json:"addressWithoutNumber"`
}

// IntegrationTerminal models one terminal configuration on a branch.
type IntegrationTerminal struct {
	CommerceRut       string  `json:"commerceRut"`
	BranchCode        int     `json:"branchCode"`
	TerminalID        *string `json:"terminalId"`
	ContractID        string  `json:"contractId"`
	Technology        int     `json:"technology"`
	UssdNumber        int     `json:"ussdNumber"`
	User              string  `json:"user"`
	Obs               string  `json:"obs"`
	AdditionalInfo    string  `json:"additionalInfo"`
	ServiceID         int     `json:"serviceId"`
	SellerRut         string  `json:"sellerRut"`
	TerminalNumber    string  `json:"terminalNumber"`
	ConfigurationType string  `json:"configurationType"`
}

// IntegrationCommerce models the primary commerce entity.
type IntegrationCommerce struct {
	CommerceRut        string             `json:"commerceRut"`
	BusinessName       string             `json:"businessName"`
	BusinessLine       *int               `json:"businessLine"`
	Origin             string             `json:"origin"`
	Email              string             `json:"email"`
	EmailPayment       string             `json:"emailPayment"`
	FantasyName        string             `json:"fantasyName"`
	Name               string             `json:"name"`
	LastName           string             `json:"lastName"`
	MothersLastName    string             `json:"mothersLastName"`
	MobilePhoneNumber  string             `json:"mobilePhoneNumber"`
	SellerRut          string             `json:"sellerRut"`
	IntegrationAddress IntegrationAddress `json:"integrationAddress"`
	Obs                string             `json:"obs"`
}

// IntegrationBankAccount models the settlement account entity.
type IntegrationBankAccount struct {
	CommerceRut        string `json:"commerceRut"`
	BankCode           *int   `json:"bankCode"`
	OwnerFullName      string `json:"ownerFullName"`
	OwnerRut           string `json:"ownerRut"`
	OwnerEmail         string `json:"ownerEmail"`
	User               string `json:"user"`
	AccountType        *int   `json:"accountType"`
	OwnerAccountNumber string `json:"ownerAccountNumber"`
	ServiceID          int    `json:"serviceId"`
	PaymentType        string `json:"paymentType"`
}

// IntegrationContact models the affiliation contact entity.
type IntegrationContact struct {
	CommerceRut         string `json:"commerceRut"`
	LegalRepresentative bool   `json:"legalRepresentative"`
	Names               string `json:"names"`
	LastName            string `json:"lastName"`
	SecondLastName      string `json:"secondLastName"`
	Rut                 string `json:"rut"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	SerialNumber        string `json:"serialNumber"`
	Sign                bool   `json:"sign"`
	Third               bool   `json:"third"`
	SignAllowed         bool   `json:"signAllowed"`
}

// IntegrationBranch models one branch, holding its address and terminals.
type IntegrationBranch struct {
	BranchID                        *string               `json:"branchId"`
	MainBranch                      bool                  `json:"mainBranch"`
	BranchVerticalID                int                   `json:"branchVerticalId"`
	IntegrationAddress              IntegrationAddress    `json:"integrationAddress"`
	BusinessName                    string                `json:"businessName"`
	CommerceRut                     string                `json:"commerceRut"`
	Email                           string                `json:"email"`
	FantasyName                     string                `json:"fantasyName"`
	Description                     string                `json:"description"`
	IDMcc                           *int                  `json:"idMcc"`
	MobilePhoneNumber               string                `json:"mobilePhoneNumber"`
	Name                            string                `json:"name"`
	WebSite                         string                `json:"webSite"`
	MantisaBill                     string                `json:"mantisaBill"`
	DvBill                          string                `json:"dvBill"`
	BankAccount                     string                `json:"bankAccount"`
	MantisaHolder                   string                `json:"mantisaHolder"`
	IntegrationType                 string                `json:"integrationType"`
	User                            string                `json:"user"`
	EmailContact                    string                `json:"emailContact"`
	MerchantType                    int                   `json:"merchantType"`
	CommerceContactName             string                `json:"commerceContactName"`
	CommerceLegalRepresentativeName string                `json:"commerceLegalRepresentativeName"`
	CommerceLegalRepresentativeRut  string                `json:"commerceLegalRepresentativeRut"`
	CommerceLegalRepresentativePhone string               `json:"commerceLegalRepresentativePhone"`
	IntegrationTerminals            []IntegrationTerminal `json:"integrationTerminals"`
}

// EntidadesVolcado is the top-level payload published downstream.
type EntidadesVolcado struct {
	IntegrationCommerce    IntegrationCommerce    `json:"integrationCommerce"`
	IntegrationBankAccount IntegrationBankAccount `json:"integrationBankAccount"`
	IntegrationContact     IntegrationContact     `json:"integrationContact"`
	IntegrationBranches    []IntegrationBranch    `json:"integrationBranches"`
}
