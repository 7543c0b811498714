package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muljin/sharetrack"
	"github.com/muljin/sharetrack/date"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return s
}

func TestFreshDirectoryStartsEmpty(t *testing.T) {
	s := openTestStore(t)

	companies, err := s.Companies()
	require.NoError(t, err)
	assert.Empty(t, companies)

	accounts, err := s.Accounts()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestCompanyRoundTrip(t *testing.T) {
	s := openTestStore(t)

	company := &sharetrack.Company{
		AsxCode:  "CBA",
		Name:     "Commonwealth Bank",
		Currency: "AUD",
	}
	company.ExecuteBuy(sharetrack.Purchase{
		AccountID: "acc-1",
		Date:      date.MustParse("2023-01-01"),
		Quantity:  sharetrack.Q(100),
		UnitPrice: sharetrack.M(decimal.RequireFromString("10.00"), ""),
		Brokerage: sharetrack.M(decimal.RequireFromString("19.95"), ""),
	}, sharetrack.M(10, ""))
	require.NoError(t, s.SaveCompany(company))

	loaded, err := s.Company("CBA")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Commonwealth Bank", loaded.Name)
	require.Len(t, loaded.CurrentShares, 1)
	assert.True(t, loaded.CurrentShares[0].Quantity.Equal(sharetrack.Q(100)))
	require.Len(t, loaded.BuyHistory, 1)
	assert.True(t, loaded.BuyHistory[0].Date == date.MustParse("2023-01-01"))
}

func TestSaveCompanyReplacesExisting(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveCompany(&sharetrack.Company{AsxCode: "CBA", Name: "old"}))
	require.NoError(t, s.SaveCompany(&sharetrack.Company{AsxCode: "CBA", Name: "new"}))

	companies, err := s.Companies()
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "new", companies[0].Name)
}

func TestCompanyUnknownCode(t *testing.T) {
	s := openTestStore(t)
	loaded, err := s.Company("NOPE")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestAddAccount(t *testing.T) {
	s := openTestStore(t)

	a, err := s.AddAccount("super fund")
	require.NoError(t, err)
	assert.Equal(t, "super fund", a.Name)
	assert.NotEmpty(t, a.AccountID)
	assert.NotEmpty(t, a.Created)

	b, err := s.AddAccount("trading")
	require.NoError(t, err)
	assert.NotEqual(t, a.AccountID, b.AccountID)

	accounts, err := s.Accounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestRenameAccount(t *testing.T) {
	s := openTestStore(t)
	a, err := s.AddAccount("super fund")
	require.NoError(t, err)

	require.NoError(t, s.RenameAccount(a.AccountID, "smsf"))
	accounts, err := s.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "smsf", accounts[0].Name)

	err = s.RenameAccount("no-such-id", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account id")
}

func TestSettingsDefaults(t *testing.T) {
	s := openTestStore(t)

	settings, err := s.Settings()
	require.NoError(t, err)
	assert.True(t, settings.UnitPriceAutoFill)
	assert.True(t, settings.GstPercent.Equal(sharetrack.M(10, "")))
	assert.True(t, settings.BrokerageAutoFill.IsZero())
}

func TestSettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	settings, err := s.Settings()
	require.NoError(t, err)
	settings.UnitPriceAutoFill = false
	settings.BrokerageAutoFill = sharetrack.M(decimal.RequireFromString("9.50"), "")
	require.NoError(t, s.SaveSettings(settings))

	loaded, err := s.Settings()
	require.NoError(t, err)
	assert.False(t, loaded.UnitPriceAutoFill)
	assert.True(t, loaded.BrokerageAutoFill.Equal(sharetrack.M(decimal.RequireFromString("9.50"), "")))
}
